package dashboard

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/render"
)

// confirmState holds the contact awaiting delete confirmation.
type confirmState struct {
	target contact.Contact
}

// View renders the confirmation prompt.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete %s?\n", render.Sanitize(cs.target.Name))
	fmt.Fprintf(&b, "\n  %s  %s", render.Sanitize(cs.target.Phone), mutedText.Render("id "+render.Sanitize(cs.target.ID.String())))
	b.WriteString("\n\n  [y/Enter] Confirm   [n/Esc] Cancel")
	return b.String()
}
