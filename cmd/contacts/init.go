package cli

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/defaults"
)

// InitCmd writes the default files into the data directory and reports
// which ones it wrote or kept
func InitCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and default config.yaml",
		Long: `Create the platform data directory and copy the default config.yaml
into it. Existing files are kept unless --reset is given.

The directory can be moved with the NEBO_CONTACTS_DATA_DIR environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, written, err := defaults.Install(reset)
			if err != nil {
				return err
			}
			names, err := defaults.ListDefaults()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				action := "kept"
				if slices.Contains(written, name) {
					action = "wrote"
				}
				fmt.Fprintf(out, "%s %s\n", action, filepath.Join(dir, filepath.FromSlash(name)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "overwrite existing files with the defaults")

	return cmd
}
