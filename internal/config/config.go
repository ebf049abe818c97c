package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultDirectoryURL is the remote directory queried when no profile overrides it
	DefaultDirectoryURL = "https://dummyjson.com/users"
	// DefaultUsersQuery selects the user list from the directory response
	DefaultUsersQuery = "users"
	// DefaultTimeout bounds a single directory fetch
	DefaultTimeout = "30s"
)

var (
	// ConfigDir is the global configuration directory (~/.usercrud)
	ConfigDir string

	// SettingsFile is the global settings file
	SettingsFile string

	// KeybindsFile is the keybinding overrides file
	KeybindsFile string

	// LogFile receives structured diagnostics (the TUI owns the terminal)
	LogFile string
)

// localSettingsNames are probed in the working directory before the global file
var localSettingsNames = []string{".usercrud.yaml", ".usercrud.yml", ".usercrud.json", ".usercrud.jsonc"}

// globalSettingsNames are probed in ConfigDir
var globalSettingsNames = []string{"config.yaml", "config.yml", "config.json", "config.jsonc"}

// Initialize sets up the configuration directory and default files
// It creates ~/.usercrud/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".usercrud"))
}

// InitializeAt sets up the configuration rooted at dir
func InitializeAt(dir string) error {
	ConfigDir = dir
	SettingsFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogFile = filepath.Join(ConfigDir, "usercrud.log")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	// Create default settings if no global settings file exists in any format
	if findFile(ConfigDir, globalSettingsNames) == "" {
		if err := os.WriteFile(SettingsFile, []byte(defaultSettingsYAML), FilePermissions); err != nil {
			return fmt.Errorf("failed to create settings file: %w", err)
		}
	}

	// Prefer a .jsonc keybinds file when the user created one
	if _, err := os.Stat(filepath.Join(ConfigDir, "keybinds.jsonc")); err == nil {
		KeybindsFile = filepath.Join(ConfigDir, "keybinds.jsonc")
	}

	return nil
}

// GetSettingsFilePath returns the settings file path (local or global)
func GetSettingsFilePath() string {
	if local := findFile(".", localSettingsNames); local != "" {
		return local
	}
	if global := findFile(ConfigDir, globalSettingsNames); global != "" {
		return global
	}
	return SettingsFile
}

// LocalConfigExists checks if there's a local settings file in the working directory
func LocalConfigExists() bool {
	return findFile(".", localSettingsNames) != ""
}

func findFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

const defaultSettingsYAML = `# usercrud settings
activeProfile: Default
profiles:
  - name: Default
    url: ` + DefaultDirectoryURL + `
    usersQuery: ` + DefaultUsersQuery + `
    timeout: ` + DefaultTimeout + `
    headers: {}
`
