package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/covtrace/tracetriage/internal/api"
	"github.com/covtrace/tracetriage/internal/config"
	"github.com/covtrace/tracetriage/internal/logger"
	"github.com/covtrace/tracetriage/internal/model"
	"github.com/covtrace/tracetriage/internal/session"
)

var (
	flagConfig  string
	flagServer  string
	flagVerbose bool

	cfg    *config.Config
	log    *zap.Logger
	client *api.Client
	store  *session.Store
)

var rootCmd = &cobra.Command{
	Use:   "tracetriage",
	Short: "Terminal client for requirement/test-case traceability",
	Long: `tracetriage is a terminal client for a traceability server. It manages
requirements, test cases, and the links between them, and its main job is
triaging AI-suggested links: an interactive dashboard for filtering,
previewing, and accepting or rejecting pending suggestions.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	if log != nil {
		_ = log.Sync()
	}
	return err
}

// setup wires config, logging, the API client, and the session before any
// subcommand runs. version and help never touch the network or the
// filesystem.
func setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "help", "completion":
		return nil
	}

	path, err := config.ResolveConfigPath(flagConfig)
	if err != nil {
		return err
	}
	cfg, err = config.Load(path)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.Server.BaseURL = flagServer
	}

	level := cfg.Logging.Level
	if flagVerbose {
		level = "debug"
	}
	log = logger.New(level, cfg.LogPath())

	client = api.New(cfg.Server.BaseURL, cfg.Timeout(), log)
	store = session.New(client, cfg.TokenPath(), log)

	// Best effort: a rejected or missing token just leaves the session
	// anonymous, and protected commands fail with their own message.
	if err := store.Bootstrap(cmd.Context()); err != nil {
		log.Warn("session bootstrap failed", zap.Error(err))
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "override the server base URL")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		reviewCmd,
		requirementsCmd,
		testcasesCmd,
		linksCmd,
		suggestionsCmd,
		matrixCmd,
		metricsCmd,
		analyticsCmd,
		notificationsCmd,
		usersCmd,
		auditCmd,
		versionCmd,
	)
}

func requireLogin() error {
	return store.RequireLogin()
}

// requireAction checks login plus the role gate for an operation. The
// server re-checks; this only gives a clearer local error.
func requireAction(action model.Action, what string) error {
	if err := store.RequireLogin(); err != nil {
		return err
	}
	if !model.CanPerform(store.Role(), action) {
		return fmt.Errorf("your role (%s) cannot %s", store.Role(), what)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
