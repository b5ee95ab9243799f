package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/neboloop/nebo-contacts/internal/config"
	"github.com/neboloop/nebo-contacts/internal/defaults"
)

// DoctorCmd creates the doctor command for health checks
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check Contacts access and diagnose setup issues",
		Long: `Run diagnostics on your nebo-contacts installation.

Checks:
  - Platform
  - Script interpreter
  - Configuration file
  - Contacts access (privacy permission)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, loadedConfig)
		},
	}
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

var errDoctorFailed = errors.New("doctor found problems")

func runDoctor(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	color := isTerminal(out)

	var results []checkResult
	results = append(results, checkPlatform())
	results = append(results, checkInterpreter(cfg))
	results = append(results, checkConfigFile())
	results = append(results, checkContactsAccess(cmd, cfg)...)

	okCount, warnCount, errorCount := 0, 0, 0
	for _, r := range results {
		switch r.status {
		case "ok":
			fmt.Fprintf(out, "%s %s: %s\n", paint(color, "32", "✓"), r.name, r.message)
			okCount++
		case "warn":
			fmt.Fprintf(out, "%s %s: %s\n", paint(color, "33", "⚠"), r.name, r.message)
			warnCount++
		case "error":
			fmt.Fprintf(out, "%s %s: %s\n", paint(color, "31", "✗"), r.name, r.message)
			errorCount++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errorCount)

	if errorCount > 0 {
		return errDoctorFailed
	}
	return nil
}

func checkPlatform() checkResult {
	if runtime.GOOS == "darwin" {
		return checkResult{name: "Platform", status: "ok", message: "macOS"}
	}
	return checkResult{
		name:    "Platform",
		status:  "warn",
		message: fmt.Sprintf("%s: Contacts automation requires macOS", runtime.GOOS),
	}
}

func checkInterpreter(cfg *config.Config) checkResult {
	path, err := exec.LookPath(cfg.Script.Interpreter)
	if err != nil {
		return checkResult{name: "Interpreter", status: "error", message: err.Error()}
	}
	return checkResult{name: "Interpreter", status: "ok", message: path}
}

func checkConfigFile() checkResult {
	if cfgFile != "" {
		return checkResult{name: "Config File", status: "ok", message: cfgFile}
	}
	path, err := defaults.ConfigPath()
	if err != nil {
		return checkResult{name: "Config File", status: "warn", message: err.Error()}
	}
	if _, err := os.Stat(path); err != nil {
		return checkResult{
			name:    "Config File",
			status:  "warn",
			message: fmt.Sprintf("%s not found, using built-in defaults (run 'nebo-contacts init')", path),
		}
	}
	return checkResult{name: "Config File", status: "ok", message: path}
}

func checkContactsAccess(cmd *cobra.Command, cfg *config.Config) []checkResult {
	status, err := newService(cfg).CheckPermissions(cmd.Context())
	if err != nil {
		return []checkResult{{name: "Contacts Access", status: "error", message: "unavailable: " + err.Error()}}
	}

	var results []checkResult
	for _, detail := range status.Details {
		st := "error"
		if status.Contacts {
			st = "ok"
		}
		results = append(results, checkResult{
			name:    "Contacts Access",
			status:  st,
			message: strings.TrimPrefix(detail, "contacts: "),
		})
	}
	if len(results) == 0 && !status.Contacts {
		results = append(results, checkResult{name: "Contacts Access", status: "error", message: "denied"})
	}
	return results
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
