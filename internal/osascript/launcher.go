package osascript

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// Launcher opens an application by name without going through the script
// interpreter.
type Launcher interface {
	Launch(ctx context.Context, app string) error
}

// OpenLauncher uses the macOS open(1) command.
type OpenLauncher struct {
	Command string        // defaults to "open"
	Timeout time.Duration // defaults to DefaultTimeout
}

func (l OpenLauncher) Launch(ctx context.Context, app string) error {
	command := l.Command
	if command == "" {
		command = "open"
	}
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, command, "-a", app).CombinedOutput()
	if err != nil {
		return &ExecError{Stderr: strings.TrimSpace(string(out)), Err: err}
	}
	return nil
}
