package cli

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/config"
	"github.com/neboloop/nebo-contacts/internal/logging"
)

// Shared CLI flags (used across multiple command files)
var (
	cfgFile  string
	logLevel string
	verbose  bool
)

// ErrToolFailed is returned by `call` when the tool result is flagged as an
// error. The result text has already been printed.
var ErrToolFailed = errors.New("tool call failed")

// embeddedConfig holds the compiled-in defaults (set by main)
var embeddedConfig []byte

// loadedConfig is populated by the root PersistentPreRunE
var loadedConfig *config.Config

// logOutput receives log records. Stdout belongs to the MCP stdio transport.
var logOutput io.Writer = os.Stderr

// SetupRootCmd configures the root command with all subcommands and flags
func SetupRootCmd(embedded []byte) *cobra.Command {
	embeddedConfig = embedded

	rootCmd := &cobra.Command{
		Use:   "nebo-contacts",
		Short: "Nebo Contacts - MCP server for the macOS Contacts app",
		Long: `nebo-contacts exposes the macOS Contacts application to AI agents as
Model Context Protocol tools: list, search, create, update and delete
contacts, manage groups, and open cards in the Contacts app.

Run without a subcommand to serve MCP over stdin/stdout.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(cmd.Context())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: platform data directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")

	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(ToolsCmd())
	rootCmd.AddCommand(CallCmd())
	rootCmd.AddCommand(DoctorCmd())
	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(TokenCmd())

	return rootCmd
}

// loadConfig resolves the layered config and applies the log settings.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(embeddedConfig, cfgFile)
	if err != nil {
		return err
	}

	if err := applyLogging(cfg); err != nil {
		return err
	}
	if quietCommand(cmd) && !verbose && logLevel == "" {
		logging.Disable()
	} else {
		logging.Enable()
	}

	loadedConfig = cfg
	return nil
}

// applyLogging sets up logging from cfg; --log-level and --verbose win.
func applyLogging(cfg *config.Config) error {
	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	return logging.Setup(logOutput, level, cfg.Log.Format)
}

// quietCommand reports whether cmd prints a result and exits. Those commands
// log only when --verbose or --log-level is given; the servers always log.
func quietCommand(cmd *cobra.Command) bool {
	return cmd.HasParent() && cmd.Name() != "serve"
}
