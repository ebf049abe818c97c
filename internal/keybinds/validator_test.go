package keybinds

import "testing"

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Type:    "invalid",
		Context: ContextNormal,
		Key:     "x",
		Message: "unknown action",
	}

	expected := "[invalid] x in context 'normal': unknown action"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestValidator_ValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		config       *Config
		wantErrors   int
		wantWarnings int
	}{
		{
			name:   "empty config",
			config: &Config{},
		},
		{
			name:   "known actions",
			config: &Config{Normal: map[string]string{"x": "delete_row", "D": "delete_row"}},
		},
		{
			name:       "unknown action",
			config:     &Config{Normal: map[string]string{"x": "explode"}},
			wantErrors: 1,
		},
		{
			name:       "modifier without key",
			config:     &Config{Global: map[string]string{"ctrl+": "quit"}},
			wantErrors: 1,
		},
		{
			name:   "unbind is allowed",
			config: &Config{Normal: map[string]string{"d": ""}},
		},
		{
			name:         "reserved key rebound",
			config:       &Config{Global: map[string]string{"ctrl+c": "reload"}},
			wantWarnings: 1,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateConfig(tt.config)
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("Errors = %d, want %d\n%s", len(result.Errors), tt.wantErrors, result.String())
			}
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("Warnings = %d, want %d\n%s", len(result.Warnings), tt.wantWarnings, result.String())
			}
		})
	}
}

func TestValidator_ValidateRegistry_Shadowing(t *testing.T) {
	v := NewValidator()

	if result := v.ValidateRegistry(NewDefaultRegistry()); result.HasWarnings() {
		t.Errorf("Defaults should not shadow globals:\n%s", result.String())
	}

	r := NewDefaultRegistry()
	r.Register(ContextForm, "ctrl+c", ActionCancel)
	result := v.ValidateRegistry(r)
	if len(result.Warnings) != 1 {
		t.Errorf("Expected 1 shadowing warning, got:\n%s", result.String())
	}
}

func TestValidationResult_String(t *testing.T) {
	result := &ValidationResult{}
	if got := result.String(); got != "No issues found" {
		t.Errorf("Expected 'No issues found', got %q", got)
	}
}

func TestAction_IsKnown(t *testing.T) {
	for _, a := range []Action{ActionQuit, ActionSave, ActionTextPaste, ActionFilterHelp} {
		if !a.IsKnown() {
			t.Errorf("Expected %s to be known", a)
		}
	}
	if Action("nope").IsKnown() {
		t.Error("Expected 'nope' to be unknown")
	}
}
