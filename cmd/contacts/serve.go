package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/config"
	"github.com/neboloop/nebo-contacts/internal/defaults"
	"github.com/neboloop/nebo-contacts/internal/logging"
)

// configAddr is the --http value used when the flag is given without an
// address: listen on server.http_addr.
const configAddr = "config"

// ServeCmd creates the serve command
func ServeCmd() *cobra.Command {
	var httpAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the contact tools over MCP",
		Long: `Serve the contact tools over the Model Context Protocol.

By default the server speaks MCP over stdin/stdout, which is what desktop
agents expect when they launch it as a subprocess. With --http it serves
the streamable HTTP transport at /mcp instead.

Examples:
  nebo-contacts serve                        # stdio
  nebo-contacts serve --http                 # HTTP on server.http_addr
  nebo-contacts serve --http 127.0.0.1:9000  # HTTP on a specific address`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if httpAddr == "" {
				return runStdio(cmd.Context())
			}
			if httpAddr == configAddr {
				httpAddr = loadedConfig.Server.HTTPAddr
			}
			return runHTTP(cmd.Context(), httpAddr)
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	cmd.Flags().Lookup("http").NoOptDefVal = configAddr

	return cmd
}

// signalContext cancels on SIGINT/SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runStdio(parent context.Context) error {
	ctx, cancel := signalContext(parent)
	defer cancel()
	watchConfig(ctx)

	err := newMCPServer(loadedConfig).Run(ctx)
	if ctx.Err() != nil {
		logging.Info("[MCP] shutting down")
		return nil
	}
	return err
}

func runHTTP(parent context.Context, addr string) error {
	ctx, cancel := signalContext(parent)
	defer cancel()
	watchConfig(ctx)

	token := httpToken()
	if token == "" {
		logging.Warnf("[MCP] no auth token configured, HTTP transport on %s is unauthenticated", addr)
	}
	return newMCPServer(loadedConfig).ServeHTTP(ctx, addr, token)
}

// watchConfig re-applies log settings when the config file changes. Other
// settings are read once and need a restart.
func watchConfig(ctx context.Context) {
	path := cfgFile
	if path == "" {
		p, err := defaults.ConfigPath()
		if err != nil {
			return
		}
		path = p
	}
	err := config.Watch(ctx, path, func() {
		cfg, err := config.Load(embeddedConfig, cfgFile)
		if err != nil {
			logging.Warnf("[Config] reload of %s failed: %v", path, err)
			return
		}
		if err := applyLogging(cfg); err != nil {
			logging.Warnf("[Config] reload of %s failed: %v", path, err)
			return
		}
		logging.Infof("[Config] reloaded log settings from %s", path)
	})
	if err != nil {
		logging.Debugf("[Config] not watching %s: %v", path, err)
	}
}
