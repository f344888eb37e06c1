package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/render"
)

// DefaultErrorTTL is how long an error stays visible when no other
// duration is configured.
const DefaultErrorTTL = 5 * time.Second

// errorRegion is the single error line shown below the form.
//
// Every Show and Clear bumps seq. An expiry only hides the region when its
// seq is still current, so a newer message always gets its full TTL.
type errorRegion struct {
	text    string
	visible bool
	seq     int
	ttl     time.Duration
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

func newErrorRegion(ttl time.Duration) errorRegion {
	if ttl <= 0 {
		ttl = DefaultErrorTTL
	}
	return errorRegion{ttl: ttl, tick: tea.Tick}
}

// Show displays text and returns the command that expires it after the TTL.
func (e *errorRegion) Show(text string) tea.Cmd {
	e.seq++
	e.text = text
	e.visible = true
	seq := e.seq
	return e.tick(e.ttl, func(time.Time) tea.Msg {
		return errorExpiredMsg{seq: seq}
	})
}

// Expire hides the region if seq belongs to the message currently shown.
func (e *errorRegion) Expire(seq int) {
	if seq != e.seq {
		return
	}
	e.text = ""
	e.visible = false
}

// Clear empties and hides the region immediately. Pending expiries
// become stale.
func (e *errorRegion) Clear() {
	e.seq++
	e.text = ""
	e.visible = false
}

// Visible reports whether an error is currently shown.
func (e errorRegion) Visible() bool { return e.visible }

// Text returns the message currently shown, or "".
func (e errorRegion) Text() string { return e.text }

// View renders the region, or "" when hidden.
func (e errorRegion) View() string {
	if !e.visible {
		return ""
	}
	return errorText.Render("✗ " + render.Sanitize(e.text))
}
