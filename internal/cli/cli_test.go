package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/usercrud/internal/config"
	"github.com/studiowebux/usercrud/internal/format"
	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/types"
)

type stubSource struct {
	users []types.UserRecord
	err   error
}

func (s *stubSource) Fetch(ctx context.Context) ([]types.UserRecord, error) {
	return s.users, s.err
}

var users = []types.UserRecord{
	{ID: 1, FirstName: "Emily", LastName: "Johnson", Age: "28", City: "Phoenix"},
	{ID: 2, FirstName: "Michael", LastName: "Williams", Age: "35", City: "Houston"},
}

func noColor() *bool {
	b := false
	return &b
}

func TestList_Text(t *testing.T) {
	var out bytes.Buffer
	err := List(context.Background(), ListOptions{
		Source: &stubSource{users: users},
		Out:    &out,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "1    | Emily Johnson    | 28  | Phoenix") {
		t.Errorf("Missing first row:\n%s", got)
	}
	if !strings.Contains(got, "2 record(s)") {
		t.Errorf("Missing count:\n%s", got)
	}
}

func TestList_SearchAndJSON(t *testing.T) {
	var out bytes.Buffer
	err := List(context.Background(), ListOptions{
		Source:       &stubSource{users: users},
		Search:       "HOUSTON",
		OutputFormat: format.JSON,
		Color:        noColor(),
		Out:          &out,
	})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Michael") || strings.Contains(got, "Emily") {
		t.Errorf("Search not applied:\n%s", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("Color disabled but output has escapes")
	}
}

func TestList_FetchFailurePrintsEmpty(t *testing.T) {
	var out bytes.Buffer
	err := List(context.Background(), ListOptions{
		Source:       &stubSource{err: errors.New("connection refused")},
		OutputFormat: format.YAML,
		Out:          &out,
	})
	if err != nil {
		t.Fatalf("Fetch failure should not fail the command: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("Expected empty list, got %q", out.String())
	}
}

func TestList_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := List(ctx, ListOptions{
		Source: &stubSource{err: context.Canceled},
		Out:    &bytes.Buffer{},
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestList_UnknownFormat(t *testing.T) {
	src := &stubSource{users: users}
	err := List(context.Background(), ListOptions{Source: src, OutputFormat: "xml", Out: &bytes.Buffer{}})
	if !errors.Is(err, format.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestPrintKeybinds(t *testing.T) {
	var out bytes.Buffer
	PrintKeybinds(&out, keybinds.NewDefaultRegistry())

	got := out.String()
	for _, want := range []string{"[normal]", "delete_row", "[confirm]", "confirm_yes", "quit_force"} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q", want)
		}
	}
}

func TestPrintProfiles(t *testing.T) {
	settings := &config.Settings{
		ActiveProfile: "local",
		Profiles: []config.Profile{
			{Name: "Default", URL: "https://dummyjson.com/users", Timeout: "30s"},
			{Name: "local", URL: "http://localhost:8080/users", Timeout: "5s"},
		},
	}

	var out bytes.Buffer
	PrintProfiles(&out, settings)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[2], "* | local") {
		t.Errorf("Active profile not marked: %q", lines[2])
	}
}

func TestSelectorModel(t *testing.T) {
	settings := &config.Settings{
		ActiveProfile: "b",
		Profiles: []config.Profile{
			{Name: "a", URL: "http://a"},
			{Name: "b", URL: "http://b"},
		},
	}

	t.Run("enter selects active", func(t *testing.T) {
		m := newSelector(settings)
		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		result := updated.(selectorModel)

		if result.choice != "b" {
			t.Errorf("Expected choice 'b', got %q", result.choice)
		}
		if cmd == nil {
			t.Fatal("Expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("Expected tea.QuitMsg")
		}
	})

	t.Run("q cancels", func(t *testing.T) {
		m := newSelector(settings)
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		result := updated.(selectorModel)

		if result.choice != "" || !result.quitting {
			t.Errorf("Expected cancelled selection, got %+v", result.choice)
		}
		if result.View() != "" {
			t.Error("Expected empty view after quitting")
		}
	})
}
