package osascript

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode"

	"github.com/neboloop/nebo-contacts/internal/logging"
)

const (
	DefaultInterpreter    = "osascript"
	DefaultTimeout        = 30 * time.Second
	DefaultMaxOutputBytes = 50 << 20 // 50 MiB

	// osascript reports a missing Automation grant as
	// "Not authorized to send Apple events to Contacts. (-1743)".
	permissionMarker = "Not authorized"
	maxStderrBytes   = 64 << 10
)

// DefaultArgs selects the JavaScript for Automation dialect and reads the
// script from the argument that follows.
var DefaultArgs = []string{"-l", "JavaScript", "-e"}

var (
	// ErrPermissionDenied is returned when the interpreter is not allowed to
	// control the Contacts application.
	ErrPermissionDenied = errors.New("Permission denied: grant Contacts access in System Settings > Privacy & Security > Contacts, then try again")
	ErrTimeout          = errors.New("script timed out")
	ErrOutputTooLarge   = errors.New("script output exceeded buffer limit")
)

// ExecError is any interpreter failure that is not a permission problem.
// Its message is the interpreter's own error text.
type ExecError struct {
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// Runner executes one generated script and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Config controls how OSAScript spawns the interpreter.
type Config struct {
	Interpreter    string
	Args           []string // placed before the script text
	Timeout        time.Duration
	MaxOutputBytes int
}

// OSAScript runs scripts through the osascript binary. Every call spawns
// exactly one process and failures are never retried.
type OSAScript struct {
	cfg Config
}

// NewOSAScript creates a runner, filling zero config fields with defaults.
func NewOSAScript(cfg Config) *OSAScript {
	if cfg.Interpreter == "" {
		cfg.Interpreter = DefaultInterpreter
	}
	if cfg.Args == nil {
		cfg.Args = DefaultArgs
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return &OSAScript{cfg: cfg}
}

// Run executes script and returns stdout with trailing whitespace removed.
func (r *OSAScript) Run(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	args := make([]string, 0, len(r.cfg.Args)+1)
	args = append(args, r.cfg.Args...)
	args = append(args, script)

	cmd := exec.CommandContext(ctx, r.cfg.Interpreter, args...)
	// Bound the wait for pipes held open by grandchildren after a kill.
	cmd.WaitDelay = time.Second

	stdout := newLimitedWriter(r.cfg.MaxOutputBytes)
	stderr := newLimitedWriter(maxStderrBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	start := time.Now()
	err := cmd.Run()
	logging.Debugf("[Runner] script %s finished in %s (stdout=%d bytes, err=%v)",
		scriptID(script), time.Since(start).Round(time.Millisecond), stdout.buf.Len(), err)

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, r.cfg.Timeout)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", classify(err, stderr.String())
	}
	if stdout.overflow {
		return "", fmt.Errorf("%w of %d bytes", ErrOutputTooLarge, r.cfg.MaxOutputBytes)
	}
	return strings.TrimRightFunc(stdout.String(), unicode.IsSpace), nil
}

// classify turns a failed invocation into ErrPermissionDenied when the
// interpreter reports missing authorization, and into *ExecError otherwise.
func classify(err error, stderr string) error {
	msg := strings.TrimSpace(stderr)
	if strings.Contains(msg, permissionMarker) || strings.Contains(err.Error(), permissionMarker) {
		return ErrPermissionDenied
	}
	return &ExecError{Stderr: msg, Err: err}
}

func scriptID(script string) string {
	sum := sha1.Sum([]byte(script))
	return hex.EncodeToString(sum[:4])
}

// limitedWriter wraps a bytes.Buffer and silently drops bytes after the limit.
// It always returns len(p) to avoid broken pipe errors from subprocesses.
type limitedWriter struct {
	buf      bytes.Buffer
	limit    int
	overflow bool
}

func newLimitedWriter(limit int) *limitedWriter {
	return &limitedWriter{limit: limit}
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		if len(p) > 0 {
			w.overflow = true
		}
		return len(p), nil
	}
	if len(p) > remaining {
		w.buf.Write(p[:remaining])
		w.overflow = true
		return len(p), nil
	}
	w.buf.Write(p)
	return len(p), nil
}

func (w *limitedWriter) String() string {
	return w.buf.String()
}
