package execx

import (
	"context"
	"strings"
	"sync"

	perr "asusnumpad/internal/platform/errors"
)

// Fake is an in-memory Runner for tests. It records every invocation and
// answers from canned tables
type Fake struct {
	mu    sync.Mutex
	calls []string

	// RunErr, when set, decides the error returned by Run for a given argv
	RunErr func(name string, args []string) error
	// Outputs maps a command name to canned stdout
	Outputs map[string][]byte
	// Paths maps command names LookPath should resolve; absent names fail
	Paths map[string]string
}

// Run implements Runner
func (f *Fake) Run(_ context.Context, name string, args ...string) error {
	f.record(name, args)
	if f.RunErr != nil {
		return f.RunErr(name, args)
	}
	return nil
}

// Output implements Runner
func (f *Fake) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.record(name, args)
	if f.Outputs != nil {
		if out, ok := f.Outputs[name]; ok {
			return out, nil
		}
	}
	return nil, nil
}

// LookPath implements Runner
func (f *Fake) LookPath(name string) (string, error) {
	if f.Paths != nil {
		if p, ok := f.Paths[name]; ok {
			return p, nil
		}
	}
	return "", perr.Execf("%s: not found", name)
}

// Calls returns the recorded invocations as "name arg1 arg2 ..." strings
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *Fake) record(name string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
}
