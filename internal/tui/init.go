package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/types"
)

// Options configures the TUI
type Options struct {
	Controller *records.Controller
	Keybinds   *keybinds.Registry // Defaults when nil
	Logger     *zap.Logger
	Profile    string // Shown in the status bar
	SourceURL  string
	Clipboard  func(string) error // Defaults to the system clipboard
}

// New creates a new TUI model
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Controller == nil {
		opts.Controller = records.NewController(nil, opts.Logger)
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	search := textinput.New()
	search.Placeholder = "Search by name or city"
	search.Prompt = "Search: "
	search.Width = SearchInputWidth

	inputs := make([]textinput.Model, len(types.FormFields))
	for i, field := range types.FormFields {
		in := textinput.New()
		in.Placeholder = field.Label()
		in.Prompt = ""
		in.Width = FormInputWidth
		inputs[i] = in
	}

	helpFilter := textinput.New()
	helpFilter.Placeholder = "filter keys or actions"
	helpFilter.Prompt = "/"

	return Model{
		controller:  opts.Controller,
		keybinds:    opts.Keybinds,
		logger:      opts.Logger.Named("tui"),
		mode:        ModeNormal,
		profile:     opts.Profile,
		sourceURL:   opts.SourceURL,
		clipboard:   opts.Clipboard,
		ctx:         ctx,
		searchInput: search,
		formInputs:  inputs,
		helpFilter:  helpFilter,
		inspectView: viewport.New(80, 20),
		helpView:    viewport.New(80, 20),
	}
}

// Run starts the TUI and blocks until it exits
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Cleanup()

	// Pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
