package keybinds

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// Config represents the user's keybinding configuration.
// Each section maps a key to an action; an empty action unbinds the key.
type Config struct {
	Version   string            `json:"version,omitempty"`
	Global    map[string]string `json:"global,omitempty"`
	Normal    map[string]string `json:"normal,omitempty"`
	Search    map[string]string `json:"search,omitempty"`
	Edit      map[string]string `json:"edit,omitempty"`
	Form      map[string]string `json:"form,omitempty"`
	Confirm   map[string]string `json:"confirm,omitempty"`
	Help      map[string]string `json:"help,omitempty"`
	Inspect   map[string]string `json:"inspect,omitempty"`
	TextInput map[string]string `json:"text_input,omitempty"`
}

// sections maps config sections to contexts
func (c *Config) sections() map[Context]map[string]string {
	return map[Context]map[string]string{
		ContextGlobal:    c.Global,
		ContextNormal:    c.Normal,
		ContextSearch:    c.Search,
		ContextEdit:      c.Edit,
		ContextForm:      c.Form,
		ContextConfirm:   c.Confirm,
		ContextHelp:      c.Help,
		ContextInspect:   c.Inspect,
		ContextTextInput: c.TextInput,
	}
}

func (c *Config) section(context Context) map[string]string {
	var m *map[string]string
	switch context {
	case ContextGlobal:
		m = &c.Global
	case ContextNormal:
		m = &c.Normal
	case ContextSearch:
		m = &c.Search
	case ContextEdit:
		m = &c.Edit
	case ContextForm:
		m = &c.Form
	case ContextConfirm:
		m = &c.Confirm
	case ContextHelp:
		m = &c.Help
	case ContextInspect:
		m = &c.Inspect
	case ContextTextInput:
		m = &c.TextInput
	default:
		return nil
	}
	if *m == nil {
		*m = make(map[string]string)
	}
	return *m
}

// LoadConfig loads keybinding configuration from a JSON or JSONC file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry.
// User bindings override default bindings. The config must be valid.
func ApplyConfig(registry *Registry, config *Config) error {
	if result := NewValidator().ValidateConfig(config); result.HasErrors() {
		return fmt.Errorf("invalid keybinds config:\n%s", result.String())
	}

	for context, bindings := range config.sections() {
		for key, actionStr := range bindings {
			if actionStr == "" {
				registry.Unregister(context, key)
				continue
			}
			registry.Register(context, key, Action(actionStr))
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	registry := NewDefaultRegistry()

	if configPath == "" {
		return registry, nil
	}

	config, err := LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", configPath, err)
	}

	if err := ApplyConfig(registry, config); err != nil {
		return nil, err
	}

	return registry, nil
}

// ExportConfig exports every binding of a registry as a config
func ExportConfig(registry *Registry) *Config {
	config := &Config{Version: "1.0"}
	for context, bindings := range registry.bindings {
		section := config.section(context)
		if section == nil {
			continue
		}
		for key, action := range bindings {
			section[key] = string(action)
		}
	}
	return config
}
