package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// fakeService is an in-memory ContactService that counts calls.
type fakeService struct {
	contacts  []contact.Contact
	listErr   error
	createErr error
	deleteErr error

	lists   int
	created []contact.Input
	deleted []contact.ID
}

func (f *fakeService) List(context.Context) ([]contact.Contact, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]contact.Contact(nil), f.contacts...), nil
}

func (f *fakeService) Create(_ context.Context, in contact.Input) error {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return f.createErr
	}
	f.contacts = append(f.contacts, contact.Contact{
		ID:    contact.ID(strings.ToLower(in.Name)),
		Name:  in.Name,
		Phone: in.Phone,
	})
	return nil
}

func (f *fakeService) Delete(_ context.Context, id contact.ID) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.contacts {
		if c.ID == id {
			f.contacts = append(f.contacts[:i], f.contacts[i+1:]...)
			break
		}
	}
	return nil
}

// seeded returns a fakeService holding Ada and Grace.
func seeded() *fakeService {
	return &fakeService{contacts: []contact.Contact{
		{ID: "1", Name: "Ada", Phone: "555-0100"},
		{ID: "2", Name: "Grace", Phone: "555-0101"},
	}}
}

// newTestModel builds a Model whose error expiry timer is disabled, so
// commands can be executed synchronously. Expiry is driven by hand with
// errorExpiredMsg.
func newTestModel(svc ContactService, opts ...Option) Model {
	m := NewModel(svc, opts...)
	m.errs.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	return m
}

// started returns a test model after its initial fetch has completed.
func started(t *testing.T, svc ContactService) Model {
	t.Helper()
	m := newTestModel(svc)
	return settle(t, m, m.Init())
}

// settle runs cmd and every command produced while handling its messages,
// feeding each message back into the model. Spinner ticks are dropped so
// the loop terminates.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, tea.QuitMsg, nil:
		default:
			next, nc := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nc)
		}
	}
	return m
}

// press sends each key to the model and settles the resulting commands.
func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = settle(t, next.(Model), cmd)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyCtrlC    = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// fillForm types name and phone into the form, starting from the name input.
func fillForm(t *testing.T, m Model, name, phone string) Model {
	t.Helper()
	m = press(t, m, runes(name), keyTab)
	return press(t, m, runes(phone), keyShiftTab)
}

// isQuit reports whether cmd produces tea.QuitMsg.
func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
