// Package cli implements the non-interactive commands: listing records,
// printing keybindings and profiles.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/config"
	"github.com/studiowebux/usercrud/internal/format"
	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/records"
)

// ListOptions contains options for the list command
type ListOptions struct {
	Source       records.Source
	Search       string
	OutputFormat string // json, yaml, text
	Color        *bool  // nil detects a terminal on Out
	Out          io.Writer
	Logger       *zap.Logger
}

// List fetches the directory, applies the search and prints the view.
// A failed fetch prints an empty result; the diagnostic goes to the log.
func List(ctx context.Context, opts ListOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	// Reject bad formats before touching the network
	if _, err := format.Records(nil, opts.OutputFormat, false); err != nil {
		return err
	}

	controller := records.NewController(opts.Source, opts.Logger)
	if err := controller.Load(ctx); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	view := controller.Search(opts.Search)

	color := isTerminal(opts.Out)
	if opts.Color != nil {
		color = *opts.Color
	}

	output, err := format.Records(view, opts.OutputFormat, color)
	if err != nil {
		return err
	}

	_, err = io.WriteString(opts.Out, output)
	return err
}

// isTerminal checks if w is a terminal (not piped)
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintKeybinds writes the effective bindings of every context
func PrintKeybinds(out io.Writer, registry *keybinds.Registry) {
	for _, context := range keybinds.Contexts {
		bindings := registry.ListBindings(context)
		if len(bindings) == 0 {
			continue
		}

		rows := [][]string{{"Key", "Action", "From"}}
		for _, b := range bindings {
			rows = append(rows, []string{b.Key, string(b.Action), string(b.Context)})
		}
		widths := format.ColumnWidths(rows)

		fmt.Fprintf(out, "[%s]\n", context)
		for _, row := range rows {
			fmt.Fprintf(out, "  %s\n", format.JoinCells(row, widths))
		}
		fmt.Fprintln(out)
	}
}

// PrintProfiles writes the configured profiles, marking the active one
func PrintProfiles(out io.Writer, settings *config.Settings) {
	rows := [][]string{{"", "Name", "URL", "Timeout"}}
	for _, p := range settings.Profiles {
		marker := ""
		if p.Name == settings.ActiveProfile {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.Name, p.URL, p.Timeout})
	}

	widths := format.ColumnWidths(rows)
	for _, row := range rows {
		fmt.Fprintln(out, strings.TrimRight(format.JoinCells(row, widths), " "))
	}
}
