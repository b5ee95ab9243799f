package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/tools"
)

// ToolsCmd lists the tool catalog
func ToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the available tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tREQUIRED\tDESCRIPTION")
			for _, d := range tools.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, mode(d), required(d), d.Description)
			}
			return w.Flush()
		},
	}
}

func mode(d tools.Descriptor) string {
	switch {
	case d.ReadOnly:
		return "read"
	case d.Destructive:
		return "destructive"
	}
	return "write"
}

func required(d tools.Descriptor) string {
	var names []string
	for _, f := range d.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

// CallCmd invokes one tool locally, without an MCP client
func CallCmd() *cobra.Command {
	var rawArgs string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a single tool and print its result",
		Long: `Invoke a single tool the same way an MCP client would and print the result.

Examples:
  nebo-contacts call check_permissions
  nebo-contacts call search_contacts --args '{"query":"ada"}'
  nebo-contacts call create_contact --args '{"first_name":"Ada","phones":[{"label":"mobile","value":"555-1234"}]}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := map[string]any{}
			if strings.TrimSpace(rawArgs) != "" {
				if err := json.Unmarshal([]byte(rawArgs), &input); err != nil {
					return fmt.Errorf("--args must be a JSON object: %w", err)
				}
			}

			res := newDispatcher(loadedConfig).Call(cmd.Context(), args[0], input)
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			if res.IsError {
				return ErrToolFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rawArgs, "args", "", "tool arguments as a JSON object")

	return cmd
}
