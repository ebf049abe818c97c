package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRegistry_Match(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
	}{
		{"quit in normal", ContextNormal, "q", ActionQuit},
		{"force quit falls back to global", ContextEdit, "ctrl+c", ActionQuitForce},
		{"search", ContextNormal, "/", ActionOpenSearch},
		{"edit", ContextNormal, "e", ActionEditRow},
		{"save while editing", ContextEdit, "enter", ActionSave},
		{"cancel edit", ContextEdit, "esc", ActionCancel},
		{"delete", ContextNormal, "d", ActionDeleteRow},
		{"add", ContextNormal, "a", ActionAddRecord},
		{"reload", ContextNormal, "r", ActionReload},
		{"copy", ContextNormal, "y", ActionCopyRow},
		{"inspect", ContextNormal, "i", ActionOpenInspect},
		{"help", ContextNormal, "?", ActionOpenHelp},
		{"confirm yes", ContextConfirm, "y", ActionConfirmYes},
		{"confirm no", ContextConfirm, "n", ActionConfirmNo},
		{"close help", ContextHelp, "esc", ActionCloseModal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if !ok {
				t.Fatalf("Match(%s, %q) found nothing", tt.context, tt.key)
			}
			if got != tt.want {
				t.Errorf("Match(%s, %q) = %s, want %s", tt.context, tt.key, got, tt.want)
			}
		})
	}

	if _, ok := r.Match(ContextNormal, "z"); ok {
		t.Error("Expected no binding for 'z'")
	}
}

func TestRegistry_GetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextNormal, ActionNavigateUp); got != "k, up" {
		t.Errorf("Expected 'k, up', got %q", got)
	}
	if got := r.GetBindingString(ContextNormal, ActionQuitForce); got != "ctrl+c" {
		t.Errorf("Expected global fallback 'ctrl+c', got %q", got)
	}
	if got := r.GetBindingString(ContextConfirm, ActionReload); got != "unbound" {
		t.Errorf("Expected 'unbound', got %q", got)
	}
}

func TestRegistry_ListBindings(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextHelp, "q", ActionCloseModal)

	bindings := r.ListBindings(ContextHelp)
	if len(bindings) != 2 {
		t.Fatalf("Expected 2 bindings (shadowed global hidden), got %d: %v", len(bindings), bindings)
	}
	if bindings[0].Action != ActionCloseModal || bindings[0].Context != ContextHelp {
		t.Errorf("Unexpected first binding: %+v", bindings[0])
	}
	if bindings[1].Action != ActionQuitForce || bindings[1].Context != ContextGlobal {
		t.Errorf("Unexpected second binding: %+v", bindings[1])
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewDefaultRegistry()
	clone := r.Clone()
	clone.Register(ContextNormal, "q", ActionReload)

	if action, _ := r.Match(ContextNormal, "q"); action != ActionQuit {
		t.Errorf("Original registry changed: q -> %s", action)
	}
	if !clone.HasBinding(ContextInspect, "ctrl+c") {
		t.Error("Clone lost global binding")
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		r, err := LoadOrDefault(filepath.Join(dir, "keybinds.json"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if action, _ := r.Match(ContextNormal, "d"); action != ActionDeleteRow {
			t.Errorf("Expected default delete binding, got %s", action)
		}
	})

	t.Run("jsonc overrides and unbinds", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.jsonc")
		content := `{
  // trailing commas and comments are fine
  "normal": {
    "x": "delete_row",
    "d": "",
  },
}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		r, err := LoadOrDefault(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if action, _ := r.Match(ContextNormal, "x"); action != ActionDeleteRow {
			t.Errorf("Expected x -> delete_row, got %s", action)
		}
		if r.HasBinding(ContextNormal, "d") {
			t.Error("Expected d to be unbound")
		}
	})

	t.Run("unknown action rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte(`{"normal":{"x":"launch_rockets"}}`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadOrDefault(path)
		if err == nil {
			t.Fatal("Expected error for unknown action")
		}
		if !strings.Contains(err.Error(), "launch_rockets") {
			t.Errorf("Error should name the action: %v", err)
		}
	})

	t.Run("broken json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"normal":`), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadOrDefault(path); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestExportConfig_RoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	path := filepath.Join(t.TempDir(), "keybinds.json")

	if err := SaveConfig(ExportConfig(r), path); err != nil {
		t.Fatalf("SaveConfig error: %v", err)
	}

	loaded, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("Exported defaults should load: %v", err)
	}
	for _, context := range Contexts {
		if len(loaded.ListBindings(context)) != len(r.ListBindings(context)) {
			t.Errorf("Context %s: binding count changed", context)
		}
	}
}
