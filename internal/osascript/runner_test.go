package osascript

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shellRunner stands in for osascript: the script text becomes the -c
// argument of /bin/sh.
func shellRunner(t *testing.T, cfg Config) *OSAScript {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires /bin/sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cfg.Interpreter = "sh"
	cfg.Args = []string{"-c"}
	return NewOSAScript(cfg)
}

func TestRunTrimsTrailingWhitespace(t *testing.T) {
	r := shellRunner(t, Config{})
	out, err := r.Run(context.Background(), `printf '  [1,2]  \n\n'`)
	require.NoError(t, err)
	assert.Equal(t, "  [1,2]", out)
}

func TestRunPermissionDenied(t *testing.T) {
	r := shellRunner(t, Config{})
	_, err := r.Run(context.Background(),
		`echo "execution error: Not authorized to send Apple events to Contacts. (-1743)" >&2; exit 1`)
	require.ErrorIs(t, err, ErrPermissionDenied)
	assert.Contains(t, err.Error(), "grant Contacts access")
}

func TestRunOtherFailureKeepsMessage(t *testing.T) {
	r := shellRunner(t, Config{})
	_, err := r.Run(context.Background(), `echo "execution error: Error: Can't get object. (-1728)" >&2; exit 1`)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrPermissionDenied))

	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "execution error: Error: Can't get object. (-1728)", err.Error())
}

func TestRunFailureWithoutStderr(t *testing.T) {
	r := shellRunner(t, Config{})
	_, err := r.Run(context.Background(), `exit 3`)
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "exit status 3", err.Error())
}

func TestRunTimeout(t *testing.T) {
	r := shellRunner(t, Config{Timeout: 100 * time.Millisecond})
	start := time.Now()
	_, err := r.Run(context.Background(), `exec sleep 5`)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunOutputTooLarge(t *testing.T) {
	r := shellRunner(t, Config{MaxOutputBytes: 16})
	_, err := r.Run(context.Background(), `printf '0123456789012345678901234567890123456789'`)
	require.ErrorIs(t, err, ErrOutputTooLarge)
}

func TestRunOutputAtLimit(t *testing.T) {
	r := shellRunner(t, Config{MaxOutputBytes: 10})
	out, err := r.Run(context.Background(), `printf '0123456789'`)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", out)
}

func TestClassify(t *testing.T) {
	base := errors.New("exit status 1")
	tests := []struct {
		name       string
		stderr     string
		permission bool
	}{
		{"marker alone", "Not authorized", true},
		{"marker with noise", "osascript: 12:40: execution error: Not authorized to send Apple events to Contacts. (-1743)", true},
		{"lookup failure", "execution error: Can't get group \"Missing\". (-1728)", false},
		{"lower case does not match", "not authorized", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(base, tt.stderr)
			if tt.permission {
				assert.Same(t, ErrPermissionDenied, err)
				return
			}
			assert.NotErrorIs(t, err, ErrPermissionDenied)
			assert.ErrorIs(t, err, base)
		})
	}
}

func TestNewOSAScriptDefaults(t *testing.T) {
	r := NewOSAScript(Config{})
	assert.Equal(t, "osascript", r.cfg.Interpreter)
	assert.Equal(t, []string{"-l", "JavaScript", "-e"}, r.cfg.Args)
	assert.Equal(t, 30*time.Second, r.cfg.Timeout)
	assert.Equal(t, 50*1024*1024, r.cfg.MaxOutputBytes)
}

func TestLimitedWriter(t *testing.T) {
	w := newLimitedWriter(5)
	n, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, w.overflow)

	n, err = w.Write([]byte("defgh"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, w.overflow)
	assert.Equal(t, "abcde", w.String())
}
