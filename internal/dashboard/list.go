package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/render"
)

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

// DeleteLabel is the per-row delete control. Every rendered row carries
// exactly one.
const DeleteLabel = "[delete]"

// listState holds the contacts from the latest fetch and the row cursor.
type listState struct {
	contacts []contact.Contact
	cursor   int
	loading  bool
}

// apply replaces the displayed contacts and resets the cursor.
func (ls listState) apply(contacts []contact.Contact) listState {
	ls.loading = false
	ls.contacts = append([]contact.Contact(nil), contacts...)
	ls.cursor = 0
	return ls
}

func (ls *listState) up() {
	if len(ls.contacts) == 0 {
		return
	}
	ls.cursor--
	if ls.cursor < 0 {
		ls.cursor = len(ls.contacts) - 1
	}
}

func (ls *listState) down() {
	if len(ls.contacts) == 0 {
		return
	}
	ls.cursor++
	if ls.cursor >= len(ls.contacts) {
		ls.cursor = 0
	}
}

// Selected returns the contact under the cursor.
func (ls listState) Selected() (contact.Contact, bool) {
	if ls.cursor < 0 || ls.cursor >= len(ls.contacts) {
		return contact.Contact{}, false
	}
	return ls.contacts[ls.cursor], true
}

// Title returns the pane heading, including the row count once loaded.
func (ls listState) Title() string {
	if ls.loading {
		return "Contacts"
	}
	return fmt.Sprintf("Contacts (%d)", len(ls.contacts))
}

// View renders the table body: a loading line, the empty state, or one row
// per contact with avatar, name, phone and delete control.
func (ls listState) View(focused bool, spinnerView string) string {
	if ls.loading {
		return fmt.Sprintf("%s Loading contacts...", spinnerView)
	}
	if len(ls.contacts) == 0 {
		return mutedText.Render(render.EmptyText)
	}

	names := make([]string, len(ls.contacts))
	phones := make([]string, len(ls.contacts))
	nameWidth, phoneWidth := 0, 0
	for i, c := range ls.contacts {
		names[i] = render.Sanitize(c.Name)
		phones[i] = render.Sanitize(c.Phone)
		nameWidth = max(nameWidth, lipgloss.Width(names[i]))
		phoneWidth = max(phoneWidth, lipgloss.Width(phones[i]))
	}
	nameCol := lipgloss.NewStyle().Width(nameWidth)
	phoneCol := lipgloss.NewStyle().Width(phoneWidth)

	var b strings.Builder
	for i, c := range ls.contacts {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i == ls.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}
		row := avatarText.Render(render.Sanitize(contact.Avatar(c.Name))) + "  " +
			nameCol.Render(names[i]) + "  " +
			mutedText.Render(phoneCol.Render(phones[i])) + "  " +
			deleteText.Render(DeleteLabel)
		if focused && i == ls.cursor {
			row = selectedText.Render(row)
		}
		b.WriteString(row)
	}
	return b.String()
}
