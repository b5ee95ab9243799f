package contacts

import (
	"context"
	"sync"
)

// fakeRunner records every script and answers with canned output.
type fakeRunner struct {
	mu      sync.Mutex
	scripts []string
	out     string
	err     error
}

func (f *fakeRunner) Run(_ context.Context, script string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts = append(f.scripts, script)
	return f.out, f.err
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.scripts)
}

func (f *fakeRunner) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.scripts) == 0 {
		return ""
	}
	return f.scripts[len(f.scripts)-1]
}

type fakeLauncher struct {
	apps []string
	err  error
}

func (f *fakeLauncher) Launch(_ context.Context, app string) error {
	f.apps = append(f.apps, app)
	return f.err
}

func newTestService(out string, err error, opts ...Option) (*Service, *fakeRunner, *fakeLauncher) {
	r := &fakeRunner{out: out, err: err}
	l := &fakeLauncher{}
	return NewService(r, l, opts...), r, l
}
