// Package execx runs external commands behind a small port so services stay testable
package execx

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/logger"
)

// Runner is the command execution port used by adapters and services
// implementations must not retry; callers own failure semantics
type Runner interface {
	// Run executes name with args and returns an Exec error on non-zero exit
	Run(ctx context.Context, name string, args ...string) error
	// Output executes name with args and returns stdout; stderr is folded into the error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports the resolved path of name, or an error when absent
	LookPath(name string) (string, error)
}

// System is the production Runner backed by os/exec
type System struct {
	log logger.Logger
}

// NewSystem returns a Runner that executes real commands
func NewSystem(log logger.Logger) *System {
	return &System{log: log}
}

// Run implements Runner
func (s *System) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	s.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	if err := cmd.Run(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeExec, "%s failed%s", name, stderrSuffix(&stderr))
	}
	return nil
}

// Output implements Runner
func (s *System) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec")
	if err := cmd.Run(); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeExec, "%s failed%s", name, stderrSuffix(&stderr))
	}
	return stdout.Bytes(), nil
}

// LookPath implements Runner
func (s *System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func stderrSuffix(b *bytes.Buffer) string {
	msg := strings.TrimSpace(b.String())
	if msg == "" {
		return ""
	}
	return ": " + msg
}
