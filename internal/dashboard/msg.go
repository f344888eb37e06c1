// Package dashboard implements the interactive contact list: a creation
// form, the contact table with per-row delete, and a transient error line
// shown directly below the form.
package dashboard

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// Focus represents which control has keyboard focus.
type Focus int

const (
	FocusName  Focus = iota // Name input of the creation form.
	FocusPhone              // Phone input of the creation form.
	FocusList               // Contact table.
)

// next returns the focus after f, wrapping from the list back to the name input.
func (f Focus) next() Focus { return (f + 1) % 3 }

// prev returns the focus before f.
func (f Focus) prev() Focus { return (f + 2) % 3 }

// --- Consumer-side interfaces ---

// ContactService is the backend the dashboard talks to. *api.Client
// satisfies it.
type ContactService interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Create(ctx context.Context, in contact.Input) error
	Delete(ctx context.Context, id contact.ID) error
}

// --- tea.Msg types ---

// ContactsLoadedMsg carries the result of a List call. Seq identifies the
// refresh that issued it; results from superseded refreshes are dropped.
type ContactsLoadedMsg struct {
	Seq      int
	Contacts []contact.Contact
	Err      error
}

// ContactCreatedMsg carries the result of a Create call.
type ContactCreatedMsg struct {
	Err error
}

// ContactDeletedMsg carries the result of a Delete call.
type ContactDeletedMsg struct {
	ID  contact.ID
	Err error
}

// errorExpiredMsg fires when the error shown with the given sequence
// number has been visible for the full TTL.
type errorExpiredMsg struct {
	seq int
}

// fetchContacts returns a tea.Cmd that lists contacts asynchronously.
// A failed fetch yields an empty list alongside the error.
func fetchContacts(ctx context.Context, svc ContactService, seq int) tea.Cmd {
	return func() tea.Msg {
		contacts, err := svc.List(ctx)
		if err != nil {
			return ContactsLoadedMsg{Seq: seq, Err: err}
		}
		return ContactsLoadedMsg{Seq: seq, Contacts: contacts}
	}
}

func createContact(ctx context.Context, svc ContactService, in contact.Input) tea.Cmd {
	return func() tea.Msg {
		return ContactCreatedMsg{Err: svc.Create(ctx, in)}
	}
}

func deleteContact(ctx context.Context, svc ContactService, id contact.ID) tea.Cmd {
	return func() tea.Msg {
		return ContactDeletedMsg{ID: id, Err: svc.Delete(ctx, id)}
	}
}
