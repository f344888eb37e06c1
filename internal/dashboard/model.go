package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/smileynet/contactbook/internal/contact"
)

// Failure prefixes shown in the error region.
const (
	loadFailedPrefix   = "Load failed: "
	addFailedPrefix    = "Add failed: "
	deleteFailedPrefix = "Delete failed: "
)

// Model is the root Bubble Tea model for the contact list.
//
// Every mutation is followed by a full re-fetch; the model never edits
// its contact list locally. While a create or delete is in flight (busy)
// the submit and delete keys are ignored.
type Model struct {
	ctx     context.Context
	svc     ContactService
	log     zerolog.Logger
	focus   Focus
	form    formState
	list    listState
	confirm *confirmState
	errs    errorRegion
	busy    bool
	seq     int
	spinner spinner.Model
	help    help.Model
}

// Option configures a Model.
type Option func(*Model)

// WithErrorTTL sets how long error messages stay visible.
func WithErrorTTL(d time.Duration) Option {
	return func(m *Model) { m.errs = newErrorRegion(d) }
}

// WithLogger sets the logger used for controller events.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithContext sets the context passed to every backend call.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel creates a Model with the name input focused and the initial
// fetch pending. Init issues that fetch.
func NewModel(svc ContactService, opts ...Option) Model {
	m := Model{
		ctx:     context.Background(),
		svc:     svc,
		log:     zerolog.Nop(),
		focus:   FocusName,
		form:    newFormState(),
		list:    listState{loading: true},
		errs:    newErrorRegion(DefaultErrorTTL),
		seq:     1,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.form.focus(m.focus)
	return m
}

// Init starts the initial fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchContacts(m.ctx, m.svc, m.seq), m.spinner.Tick)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.list.loading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ContactsLoadedMsg:
		return m.applyContacts(msg)

	case ContactCreatedMsg:
		m.busy = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Msg("add contact failed")
			return m, m.errs.Show(addFailedPrefix + msg.Err.Error())
		}
		m.log.Info().Msg("contact added")
		m.form.reset()
		return m, m.refresh()

	case ContactDeletedMsg:
		m.busy = false
		if msg.Err != nil {
			m.log.Warn().Err(msg.Err).Str("id", msg.ID.String()).Msg("delete contact failed")
			return m, m.errs.Show(deleteFailedPrefix + msg.Err.Error())
		}
		m.log.Info().Str("id", msg.ID.String()).Msg("contact deleted")
		return m, m.refresh()

	case errorExpiredMsg:
		m.errs.Expire(msg.seq)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyContacts renders a fetch result. A failed fetch renders the empty
// list and shows the load error.
func (m Model) applyContacts(msg ContactsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		m.log.Debug().Int("seq", msg.Seq).Int("current", m.seq).Msg("dropping stale contact list")
		return m, nil
	}
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Msg("load contacts failed")
		m.list = m.list.apply(nil)
		return m, m.errs.Show(loadFailedPrefix + msg.Err.Error())
	}
	m.list = m.list.apply(msg.Contacts)
	return m, nil
}

// refresh clears the error, supersedes any outstanding fetch and issues a
// new one.
func (m *Model) refresh() tea.Cmd {
	m.errs.Clear()
	m.seq++
	m.list.loading = true
	return tea.Batch(fetchContacts(m.ctx, m.svc, m.seq), m.spinner.Tick)
}

// handleKey processes key messages with global and focus-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "tab":
		m.setFocus(m.focus.next())
		return m, nil
	case "shift+tab":
		m.setFocus(m.focus.prev())
		return m, nil
	}

	if m.focus == FocusList {
		return m.handleListKey(msg)
	}
	if msg.String() == "enter" {
		return m.submit()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.form.focus(f)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.list.up()
	case "down", "j":
		m.list.down()
	case "r":
		return m, m.refresh()
	case "d":
		if m.busy || m.list.loading {
			return m, nil
		}
		if c, ok := m.list.Selected(); ok {
			m.confirm = &confirmState{target: c}
		}
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirm.target.ID
		m.confirm = nil
		m.errs.Clear()
		m.busy = true
		return m, tea.Batch(deleteContact(m.ctx, m.svc, id), m.spinner.Tick)
	case "n", "esc":
		m.confirm = nil
	}
	return m, nil
}

// submit validates the form and issues the create request. Validation
// failures never reach the backend.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.errs.Clear()
	in, err := contact.NewInput(m.form.values())
	if err != nil {
		return m, m.errs.Show(err.Error())
	}
	m.busy = true
	return m, tea.Batch(createContact(m.ctx, m.svc, in), m.spinner.Tick)
}

// View renders the form, the error region directly below it, the contact
// table and the help bar.
func (m Model) View() string {
	spin := m.spinner.View()

	formPane := paneStyle(m.focus != FocusList && m.confirm == nil).
		Render(m.form.View(m.busy, spin))

	var body string
	if m.confirm != nil {
		body = m.confirm.View()
	} else {
		body = titleText.Render(m.list.Title()) + "\n\n" + m.list.View(m.focus == FocusList, spin)
	}
	listPane := paneStyle(m.focus == FocusList || m.confirm != nil).Render(body)

	sections := []string{formPane}
	if v := m.errs.View(); v != "" {
		sections = append(sections, v)
	}
	sections = append(sections, listPane, m.help.View(HelpBindings(m.focus, m.confirm != nil)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Contacts returns the contacts currently displayed.
func (m Model) Contacts() []contact.Contact {
	return append([]contact.Contact(nil), m.list.contacts...)
}

// ErrorText returns the visible error message, or "" when none is shown.
func (m Model) ErrorText() string {
	if !m.errs.Visible() {
		return ""
	}
	return m.errs.Text()
}
