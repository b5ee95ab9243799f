package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/keyring"
	"github.com/neboloop/nebo-contacts/internal/logging"
)

// TokenCmd manages the HTTP transport's bearer token in the OS keychain
func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the HTTP auth token stored in the OS keychain",
		Long: `Manage the bearer token required by 'serve --http'.

server.auth_token in config.yaml takes precedence; when it is empty the
token stored in the OS keychain is used.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Generate a new token, store it and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := keyring.NewToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := keyring.GetToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm",
		Short: "Delete the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return keyring.DeleteToken()
		},
	})

	return cmd
}

// httpToken returns the configured token, falling back to the keychain.
func httpToken() string {
	if loadedConfig.Server.AuthToken != "" {
		return loadedConfig.Server.AuthToken
	}
	if !keyring.Available() {
		return ""
	}
	token, err := keyring.GetToken()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logging.Warnf("[MCP] reading token from keychain: %v", err)
		}
		return ""
	}
	return token
}
