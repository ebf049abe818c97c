package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/usercrud/internal/filter"
)

// ErrProfileNotFound is returned when a named profile does not exist
var ErrProfileNotFound = errors.New("profile not found")

// Profile describes one remote directory endpoint
type Profile struct {
	Name       string            `json:"name" yaml:"name"`
	URL        string            `json:"url" yaml:"url"`
	UsersQuery string            `json:"usersQuery,omitempty" yaml:"usersQuery,omitempty"` // JMESPath selecting the user list
	Timeout    string            `json:"timeout,omitempty" yaml:"timeout,omitempty"`       // Go duration, e.g. "30s"
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// GetTimeout parses the profile timeout, falling back to DefaultTimeout
func (p Profile) GetTimeout() (time.Duration, error) {
	raw := p.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q for profile %s: %w", raw, p.Name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive for profile %s", p.Name)
	}
	return d, nil
}

// Settings is the top-level settings document
type Settings struct {
	ActiveProfile string    `json:"activeProfile" yaml:"activeProfile"`
	Profiles      []Profile `json:"profiles" yaml:"profiles"`
	LogFile       string    `json:"logFile,omitempty" yaml:"logFile,omitempty"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() *Settings {
	return &Settings{
		ActiveProfile: "Default",
		Profiles: []Profile{{
			Name:       "Default",
			URL:        DefaultDirectoryURL,
			UsersQuery: DefaultUsersQuery,
			Timeout:    DefaultTimeout,
			Headers:    map[string]string{},
		}},
	}
}

// LoadSettings loads settings from path, picking the decoder from the extension.
// A missing file yields DefaultSettings.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("failed to parse YAML settings: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
			return nil, fmt.Errorf("failed to parse JSON settings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported settings file format: %s (use .yaml, .yml, .json or .jsonc)", ext)
	}

	if err := settings.normalize(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	return &settings, nil
}

// normalize fills defaults and validates profiles
func (s *Settings) normalize() error {
	if len(s.Profiles) == 0 {
		s.Profiles = DefaultSettings().Profiles
	}

	seen := make(map[string]bool)
	for i := range s.Profiles {
		p := &s.Profiles[i]
		if p.Name == "" {
			return fmt.Errorf("profile %d: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true

		if p.URL == "" {
			p.URL = DefaultDirectoryURL
		}
		if p.UsersQuery == "" {
			p.UsersQuery = DefaultUsersQuery
		}
		if !filter.IsValidJMESPath(p.UsersQuery) {
			return fmt.Errorf("profile %q: invalid usersQuery %q", p.Name, p.UsersQuery)
		}
		if _, err := p.GetTimeout(); err != nil {
			return err
		}
	}

	if s.ActiveProfile == "" {
		s.ActiveProfile = s.Profiles[0].Name
	}
	if !seen[s.ActiveProfile] {
		return fmt.Errorf("active profile %q: %w", s.ActiveProfile, ErrProfileNotFound)
	}

	return nil
}

// GetActiveProfile returns the active profile
func (s *Settings) GetActiveProfile() Profile {
	p, err := s.GetProfile(s.ActiveProfile)
	if err != nil {
		return s.Profiles[0]
	}
	return p
}

// GetProfile returns a profile by name
func (s *Settings) GetProfile(name string) (Profile, error) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%s: %w", name, ErrProfileNotFound)
}

// SetActiveProfile switches the active profile
func (s *Settings) SetActiveProfile(name string) error {
	if _, err := s.GetProfile(name); err != nil {
		return err
	}
	s.ActiveProfile = name
	return nil
}

// ResolveLogFile returns the configured log path or the default LogFile
func (s *Settings) ResolveLogFile() string {
	if s.LogFile == "" {
		return LogFile
	}
	if strings.HasPrefix(s.LogFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, s.LogFile[2:])
		}
	}
	if filepath.IsAbs(s.LogFile) || ConfigDir == "" {
		return s.LogFile
	}
	return filepath.Join(ConfigDir, s.LogFile)
}
