// Package module wires the bring-up service and exposes its ports
package module

import (
	"os"

	"asusnumpad/internal/adapters/i2cdev"
	"asusnumpad/internal/adapters/pkgmgr"
	"asusnumpad/internal/adapters/systemd"
	"asusnumpad/internal/modkit"
	"asusnumpad/internal/platform/logger"
	"asusnumpad/internal/services/bringup/domain"
	"asusnumpad/internal/services/bringup/service"
)

// Module defines the bring-up module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the bring-up module with its ports.
// Collaborator ports can be injected via modkit.WithPorts(domain.Ports{...})
// for tests; anything left nil is wired to the real adapters
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	// Load defaults from config then apply overrides from CLI (if provided)
	o := FromConfig(deps.Cfg)
	o.Paths = mergePaths(o.Paths, overrides.Paths)
	if overrides.Preset != nil {
		o.Preset = overrides.Preset
	}

	built := modkit.Build(opts...)
	var ports domain.Ports
	if p, ok := built.Ports.(domain.Ports); ok {
		ports = p
	}
	if ports.Bus == nil {
		ports.Bus = i2cdev.New(o.Paths.SysfsRoot, o.Paths.DevRoot, *logger.Named("i2c"))
	}
	if ports.Sys == nil {
		ports.Sys = systemd.New(deps.Run, o.Paths.UnitDir, o.Paths.ModulesLoadDir, *logger.Named("systemd"))
	}
	if ports.Deps == nil {
		ports.Deps = pkgmgr.New(deps.Run, *logger.Named("pkgmgr"))
	}
	if ports.Collector == nil {
		ports.Collector = service.NewCollector(os.Stdin, os.Stdout)
	}

	svc := service.New(deps, service.Config{Paths: o.Paths, Preset: o.Preset}, ports)

	m := &Module{deps: deps}
	m.ports = Ports{
		Runner:   svc,
		Detector: svc,
	}
	return m
}

// Name returns the module name
func (m *Module) Name() string { return "bringup" }

// Ports returns the module ports (Runner, Detector)
func (m *Module) Ports() any { return m.ports }

// mergePaths overlays non-empty override fields
func mergePaths(base, over domain.Paths) domain.Paths {
	if over.SourceDir != "" {
		base.SourceDir = over.SourceDir
	}
	if over.InstallDir != "" {
		base.InstallDir = over.InstallDir
	}
	if over.UnitDir != "" {
		base.UnitDir = over.UnitDir
	}
	if over.ModulesLoadDir != "" {
		base.ModulesLoadDir = over.ModulesLoadDir
	}
	if over.SysfsRoot != "" {
		base.SysfsRoot = over.SysfsRoot
	}
	if over.DevRoot != "" {
		base.DevRoot = over.DevRoot
	}
	return base
}
