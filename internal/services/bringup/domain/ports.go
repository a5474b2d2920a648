// Package domain defines the public ports for the bring-up service
package domain

import (
	"context"

	"asusnumpad/internal/core/i2cscan"
)

// RunnerPort executes the full bring-up sequence.
// withDeps additionally installs the daemon's packaged dependencies first
type RunnerPort interface {
	Run(ctx context.Context, withDeps bool) error
}

// DetectorPort locates the touchpad interface without installing anything
type DetectorPort interface {
	Detect(ctx context.Context) (i2cscan.Candidate, error)
}

// BusPort enumerates candidate i2c buses and probes them for the controller
type BusPort interface {
	Enumerate(ctx context.Context) ([]i2cscan.Candidate, error)
	Probe(ctx context.Context, bus int) error
}

// SysPort drives the service manager and kernel module handling
type SysPort interface {
	InstallUnit(name string, content []byte) error
	LoadModule(ctx context.Context, module string) error
	PersistModule(module string) error
	Enable(ctx context.Context, unit string) error
	Restart(ctx context.Context, unit string) error
}

// DepsPort installs the daemon's runtime dependencies
type DepsPort interface {
	InstallDeps(ctx context.Context) error
}

// CollectorPort gathers a Config, typically interactively.
// models is the set of installable layout module names, in menu order
type CollectorPort interface {
	Collect(models []string) (Config, error)
}

// Ports bundles injectable collaborators for module wiring and tests
type Ports struct {
	Bus       BusPort
	Sys       SysPort
	Deps      DepsPort
	Collector CollectorPort
}
