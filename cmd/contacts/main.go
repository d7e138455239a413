package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/gateway"
	"github.com/smileynet/contacts/internal/logging"
	"github.com/smileynet/contacts/internal/view"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string `help:"Extra config file, applied after the user and project configs." type:"path"`
	Endpoint string `help:"Contact collection URL (overrides config)."`
	LogFile  string `help:"Append logs to this file."`
	LogLevel string `help:"Log level (debug, info, warn, error)."`
}

// CLI is the top-level command structure for contacts.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	View    ViewCmd          `cmd:"" default:"1" help:"Open the interactive contact list."`
	List    ListCmd          `cmd:"" help:"Print the contact list as plain text."`
}

// loadConfig loads layered config from user and project paths, then env
// and flag overrides, and validates the result.
func loadConfig(g *Globals) (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		".contacts.yaml",
	}
	if g.Config != "" {
		paths = append(paths, g.Config)
	}
	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if g.Endpoint != "" {
		cfg.API.Endpoint = g.Endpoint
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSource wires the gateway and contact source from config.
func newSource(cfg *config.Config, log zerolog.Logger) *contact.Source {
	gw := gateway.New(
		gateway.WithTimeout(cfg.API.Timeout),
		gateway.WithLogger(log),
	)
	return contact.NewSource(gw,
		contact.WithEndpoint(cfg.API.Endpoint),
		contact.WithLogger(log),
	)
}

// --- View command ---

// ViewCmd opens the interactive contact list TUI.
type ViewCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the TUI.
func (v *ViewCmd) Run(g *Globals) error {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !isTTY {
		return fmt.Errorf("view: requires a terminal (TTY); use 'contacts list' instead")
	}

	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	log, closeLog, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := view.NewModel(
		view.WithFetcher(newSource(cfg, log)),
		view.WithContext(ctx),
		view.WithLogger(log),
		view.WithBreakpoint(cfg.Display.Breakpoint),
	)

	prog := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	return v.run(isTTY, prog)
}

// run executes the tea program, enabling testable wiring.
func (v *ViewCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("view: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// --- List command ---

// ListCmd prints the sorted contact list as plain text.
type ListCmd struct {
	Expand *int `help:"ID of the contact to show in full."`
}

// Run builds real dependencies and prints the list to stdout.
func (l *ListCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	log, closeLog, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		File:     cfg.Log.File,
		Fallback: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return l.run(ctx, os.Stdout, newSource(cfg, log))
}

// run fetches once and renders, enabling testable wiring.
func (l *ListCmd) run(ctx context.Context, w io.Writer, f view.Fetcher) error {
	contacts, err := f.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("list: error fetching contacts: %w", err)
	}

	var sel view.Selection
	if l.Expand != nil {
		sel = view.Selected(*l.Expand)
	}
	return view.RenderPlain(w, contact.SortByName(contacts), sel)
}

// Exit codes.
const (
	exitSuccess = 0
	exitFetch   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var de *gateway.DecodeError
	if errors.Is(err, gateway.ErrRejected) ||
		errors.Is(err, gateway.ErrTransport) ||
		errors.Is(err, gateway.ErrNetwork) ||
		errors.As(err, &de) {
		return exitFetch
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("Browse a remote contact list."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
