package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Input limits for the creation form.
const (
	nameCharLimit  = 80
	phoneCharLimit = 32
)

// formState holds the two creation-form inputs.
type formState struct {
	name  textinput.Model
	phone textinput.Model
}

func newFormState() formState {
	return formState{
		name:  newInput("Ada Lovelace", nameCharLimit),
		phone: newInput("555-0100", phoneCharLimit),
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 32
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// focus moves keyboard focus to the input matching f and blurs the other.
// FocusList blurs both.
func (fs *formState) focus(f Focus) {
	fs.name.Blur()
	fs.phone.Blur()
	switch f {
	case FocusName:
		fs.name.Focus()
	case FocusPhone:
		fs.phone.Focus()
	}
}

// values returns the raw input values. Trimming happens in contact.NewInput.
func (fs formState) values() (name, phone string) {
	return fs.name.Value(), fs.phone.Value()
}

// reset empties both inputs.
func (fs *formState) reset() {
	fs.name.Reset()
	fs.phone.Reset()
}

// Update forwards msg to both inputs. Blurred inputs ignore key input.
func (fs formState) Update(msg tea.Msg) (formState, tea.Cmd) {
	var nameCmd, phoneCmd tea.Cmd
	fs.name, nameCmd = fs.name.Update(msg)
	fs.phone, phoneCmd = fs.phone.Update(msg)
	return fs, tea.Batch(nameCmd, phoneCmd)
}

// View renders the form pane body. busy replaces the submit hint while a
// request is in flight.
func (fs formState) View(busy bool, spinnerView string) string {
	var b strings.Builder
	b.WriteString(titleText.Render("New contact"))
	b.WriteString("\n")
	b.WriteString(labelText.Render("Name") + fs.name.View())
	b.WriteString("\n")
	b.WriteString(labelText.Render("Phone") + fs.phone.View())
	b.WriteString("\n")
	if busy {
		b.WriteString(mutedText.Render(spinnerView + " working…"))
	} else {
		b.WriteString(mutedText.Render("enter to add"))
	}
	return b.String()
}
