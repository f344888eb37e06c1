package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/smileynet/contactbook"
	"github.com/smileynet/contactbook/internal/api"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/dashboard"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/render"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	APIURL string `name:"api-url" help:"Backend base URL. Overrides config and CONTACTBOOK_API_URL." placeholder:"URL"`
	Config string `help:"Extra config file layered over the user and project files." type:"path" placeholder:"FILE"`
}

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	UI      UICmd            `cmd:"" name:"ui" help:"Open the interactive contact list."`
	List    ListCmd          `cmd:"" help:"Print all contacts."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact by id."`
}

// OutputFlags select how a contact list is printed.
type OutputFlags struct {
	Format    string `help:"Output format: text, html or json." enum:"text,html,json" default:"text" short:"f"`
	Templates string `help:"Directory checked for template overrides before the built-in ones." type:"path" placeholder:"DIR"`
}

// contactService abstracts the backend client for testing.
type contactService interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Create(ctx context.Context, in contact.Input) error
	Delete(ctx context.Context, id contact.ID) error
}

// session holds the wiring every command needs: resolved config, logger
// and backend client.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	client *api.Client
	closer io.Closer
}

func (s *session) Close() {
	_ = s.closer.Close()
}

// loadConfig loads layered config from user and project paths with env overrides.
// extra, when set, is layered last.
func loadConfig(extra string) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook.yaml",
	}
	if extra != "" {
		paths = append(paths, extra)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open resolves config, applies flag overrides and builds the session.
func (g *Globals) open() (*session, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, err
	}
	if g.APIURL != "" {
		cfg.API.BaseURL = g.APIURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Dur("timeout", cfg.API.Timeout).
		Msg("config loaded")

	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
	)
	return &session{cfg: cfg, log: logger, client: client, closer: closer}, nil
}

// --- UI command ---

// UICmd opens the interactive contact list.
type UICmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the interactive list.
func (u *UICmd) Run(g *Globals) error {
	if !isTerminal(os.Stdout) {
		return fmt.Errorf("ui: requires a terminal (TTY)")
	}

	s, err := g.open()
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	defer s.Close()

	m := dashboard.NewModel(s.client,
		dashboard.WithErrorTTL(s.cfg.UI.ErrorTTL),
		dashboard.WithLogger(s.log),
	)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	return u.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (u *UICmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("ui: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- List command ---

// ListCmd prints the contact list once.
type ListCmd struct {
	OutputFlags
}

// Run fetches and prints the contact list.
func (l *ListCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return l.run(ctx, os.Stdout, s.client)
}

// run fetches and prints. A failed fetch still prints the empty list
// before the error is returned.
func (l *ListCmd) run(ctx context.Context, w io.Writer, svc contactService) error {
	if err := printList(ctx, w, l.OutputFlags, svc); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return nil
}

// --- Add command ---

// AddCmd validates and creates a contact, then prints the refreshed list.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number; must contain at least 3 digits."`
	OutputFlags
}

// Run creates the contact.
func (a *AddCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.run(ctx, os.Stdout, s.client)
}

// run validates before touching the backend; invalid input never
// produces a request.
func (a *AddCmd) run(ctx context.Context, w io.Writer, svc contactService) error {
	in, err := contact.NewInput(a.Name, a.Phone)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	if err := svc.Create(ctx, in); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Added %s\n", render.Sanitize(in.Name))

	if err := printList(ctx, w, a.OutputFlags, svc); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// --- Delete command ---

// DeleteCmd deletes a contact after confirmation, then prints the
// refreshed list.
type DeleteCmd struct {
	ID  string `arg:"" help:"Contact id, as shown by list."`
	Yes bool   `short:"y" help:"Delete without asking for confirmation."`
	OutputFlags
}

// errNoConfirmation is returned when a prompt is needed but stdin is not a terminal.
var errNoConfirmation = errors.New("confirmation required: pass --yes or run from a terminal")

// Run deletes the contact.
func (d *DeleteCmd) Run(g *Globals) error {
	s, err := g.open()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return d.run(ctx, os.Stdout, os.Stdin, isTerminal(os.Stdin), s.client)
}

// run asks for confirmation unless --yes was given. A declined prompt
// sends nothing.
func (d *DeleteCmd) run(ctx context.Context, w io.Writer, in io.Reader, isTTY bool, svc contactService) error {
	if !d.Yes {
		if !isTTY {
			return fmt.Errorf("delete: %w", errNoConfirmation)
		}
		if !confirm(w, in, fmt.Sprintf("Delete contact %s? [y/N] ", render.Sanitize(d.ID))) {
			_, _ = fmt.Fprintln(w, "Cancelled")
			return nil
		}
	}

	if err := svc.Delete(ctx, contact.ID(d.ID)); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Deleted %s\n", render.Sanitize(d.ID))

	if err := printList(ctx, w, d.OutputFlags, svc); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// confirm prints prompt and reports whether the answer read from in is yes.
func confirm(w io.Writer, in io.Reader, prompt string) bool {
	_, _ = fmt.Fprint(w, prompt)
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		_, _ = fmt.Fprintln(w)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// --- Output ---

// printList fetches contacts and prints them in the requested format.
// A failed fetch prints the empty rendering and returns the fetch error.
func printList(ctx context.Context, w io.Writer, out OutputFlags, svc contactService) error {
	contacts, fetchErr := svc.List(ctx)
	if fetchErr != nil {
		contacts = nil
	}
	if err := printContacts(w, out, contacts); err != nil {
		return err
	}
	return fetchErr
}

func printContacts(w io.Writer, out OutputFlags, contacts []contact.Contact) error {
	switch out.Format {
	case "html":
		h, err := render.NewHTML(contactbook.OverlayFS(out.Templates, contactbook.Templates))
		if err != nil {
			return err
		}
		s, err := h.Render(contacts)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, s)
		return err
	case "json":
		if contacts == nil {
			contacts = []contact.Contact{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(contacts)
	default:
		_, err := io.WriteString(w, render.Text(contacts))
		return err
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	exitSuccess = 0
	exitBackend = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, contact.ErrValidation) {
		return exitSetup
	}
	if errors.Is(err, api.ErrLoadFailed) ||
		errors.Is(err, api.ErrCreateFailed) ||
		errors.Is(err, api.ErrDeleteFailed) {
		return exitBackend
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("Manage the contacts held by a contacts REST backend."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
