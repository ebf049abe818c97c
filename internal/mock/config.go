package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/usercrud/internal/types"
)

// LoadConfig loads a mock configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// validateConfig validates the mock configuration
func validateConfig(config *Config) error {
	if config.Path != "" && !strings.HasPrefix(config.Path, "/") {
		return fmt.Errorf("path must start with '/'")
	}
	if config.Status != 0 && http.StatusText(config.Status) == "" {
		return fmt.Errorf("unknown status code %d", config.Status)
	}
	if config.Delay < 0 {
		return fmt.Errorf("delay must not be negative")
	}
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d out of range", config.Port)
	}

	seen := make(map[int]bool)
	for i, user := range config.Users {
		if user.FirstName == "" && user.LastName == "" {
			return fmt.Errorf("user %d: firstName or lastName is required", i)
		}
		if seen[user.ID] {
			return fmt.Errorf("user %d: duplicate id %d", i, user.ID)
		}
		seen[user.ID] = true
	}

	return nil
}

// DefaultConfig returns a small fixture matching the public directory shape
func DefaultConfig() *Config {
	return &Config{
		Host:    "localhost",
		Port:    8080,
		Path:    "/users",
		Logging: true,
		Users: []types.RemoteUser{
			{ID: 1, FirstName: "Emily", LastName: "Johnson", Age: "28", Address: &types.RemoteAddress{City: "Phoenix"}},
			{ID: 2, FirstName: "Michael", LastName: "Williams", Age: "35", Address: &types.RemoteAddress{City: "Houston"}},
			{ID: 3, FirstName: "Sophia", LastName: "Brown", Age: "42", Address: &types.RemoteAddress{City: "Washington"}},
		},
	}
}
