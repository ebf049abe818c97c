package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/studiowebux/usercrud/internal/cli"
	"github.com/studiowebux/usercrud/internal/config"
	"github.com/studiowebux/usercrud/internal/directory"
	"github.com/studiowebux/usercrud/internal/keybinds"
	"github.com/studiowebux/usercrud/internal/logging"
	"github.com/studiowebux/usercrud/internal/mock"
	"github.com/studiowebux/usercrud/internal/records"
	"github.com/studiowebux/usercrud/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "usercrud",
	Short: "Browse and edit a user directory in the terminal",
	Long: `usercrud fetches a user list from a remote directory service and lets you
search, edit, add and delete records in memory. Nothing is written back.

Examples:
  usercrud                             # Start interactive TUI
  usercrud -p local                    # Use the 'local' profile
  usercrud --pick                      # Choose a profile interactively
  usercrud list --search phoenix       # Print matching records
  usercrud list -o json                # Print records as JSON
  usercrud mock users.yaml --port 9000 # Serve a fixture directory`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return fmt.Errorf("failed to load keybinds: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return tui.Run(ctx, tui.Options{
			Controller: records.NewController(env.client, env.logger),
			Keybinds:   registry,
			Logger:     env.logger,
			Profile:    env.profile.Name,
			SourceURL:  env.client.URL(),
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch the directory and print the records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.List(ctx, cli.ListOptions{
			Source:       env.client,
			Search:       flagSearch,
			OutputFormat: flagOutput,
			Out:          cmd.OutOrStdout(),
			Logger:       env.logger,
		})
	},
}

var mockCmd = &cobra.Command{
	Use:   "mock [fixture]",
	Short: "Serve a mock user directory",
	Long: `Serve a user directory from a YAML or JSON fixture, or a built-in sample
when no fixture is given. Point a profile at the printed URL to use it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New("", flagVerbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cfg := mock.DefaultConfig()
		if len(args) > 0 {
			if cfg, err = mock.LoadConfig(args[0]); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("host") {
			cfg.Host = flagMockHost
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = flagMockPort
		}

		server := mock.NewServer(cfg, logger)
		if err := server.Start(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Serving %d users at %s (Ctrl+C to stop)\n", len(cfg.Users), server.UsersURL())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Logging {
			go printRequests(ctx, cmd.OutOrStdout(), server)
		}
		<-ctx.Done()

		return server.Stop()
	},
}

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Print the active keybindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
		if err != nil {
			return fmt.Errorf("failed to load keybinds: %w", err)
		}

		result := keybinds.NewValidator().ValidateRegistry(registry)
		if result.HasWarnings() {
			fmt.Fprint(cmd.ErrOrStderr(), result.String())
		}

		cli.PrintKeybinds(cmd.OutOrStdout(), registry)
		return nil
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the configured profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		cli.PrintProfiles(cmd.OutOrStdout(), settings)
		return nil
	},
}

// Flags shared by every command
var (
	flagProfile string
	flagURL     string
	flagConfig  string
	flagPick    bool
	flagVerbose bool
)

// Flags for list
var (
	flagSearch string
	flagOutput string
)

// Flags for mock
var (
	flagMockHost string
	flagMockPort int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile to use")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "Override the directory URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file (default: ./.usercrud.yaml or ~/.usercrud/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagPick, "pick", false, "Choose the profile interactively")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	listCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Only print records whose name or city contains this text")
	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	mockCmd.Flags().StringVar(&flagMockHost, "host", "localhost", "Host to bind")
	mockCmd.Flags().IntVar(&flagMockPort, "port", 8080, "Port to bind")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(profilesCmd)
}

// printRequests prints each request the mock server logs until ctx is done
func printRequests(ctx context.Context, out io.Writer, server *mock.Server) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-server.NotifyChannel():
			for _, entry := range server.ClearLogs() {
				fmt.Fprintln(out, entry)
			}
		}
	}
}

// environment holds what a directory-backed command needs
type environment struct {
	profile config.Profile
	client  *directory.Client
	logger  *zap.Logger
}

func (e *environment) close() {
	e.client.Close()
	_ = e.logger.Sync()
}

// loadSettings initializes the config directory and applies the profile flags
func loadSettings() (*config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.GetSettingsFilePath()
	}

	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	if flagPick {
		name, err := cli.PromptForProfile(settings)
		if err != nil {
			return nil, err
		}
		flagProfile = name
	}

	if flagProfile != "" {
		if err := settings.SetActiveProfile(flagProfile); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// setup resolves the active profile and builds the logger and directory client
func setup() (*environment, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	profile := settings.GetActiveProfile()
	if flagURL != "" {
		profile.URL = flagURL
	}

	logger, err := logging.New(settings.ResolveLogFile(), flagVerbose)
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("profile", profile.Name))

	opts, err := directory.OptionsFromProfile(profile, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("profile %s: %w", profile.Name, err)
	}

	return &environment{
		profile: profile,
		client:  directory.New(opts),
		logger:  logger,
	}, nil
}
