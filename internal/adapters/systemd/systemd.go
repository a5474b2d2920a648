// Package systemd manages the rendered unit, the kernel module, and module
// autoload configuration. Service-manager calls go through systemctl; the
// lifecycle semantics stay systemd's
package systemd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/execx"
	"asusnumpad/internal/platform/logger"
)

// Manager installs unit files and drives systemctl and modprobe
type Manager struct {
	run            execx.Runner
	unitDir        string
	modulesLoadDir string
	log            logger.Logger
}

// New returns a Manager writing units into unitDir and autoload conf into modulesLoadDir
func New(run execx.Runner, unitDir, modulesLoadDir string, log logger.Logger) *Manager {
	return &Manager{run: run, unitDir: unitDir, modulesLoadDir: modulesLoadDir, log: log}
}

// InstallUnit writes the rendered unit into the unit directory.
// An already-installed identical unit is left untouched so reinstallation
// stays idempotent from systemd's point of view
func (m *Manager) InstallUnit(name string, content []byte) error {
	path := filepath.Join(m.unitDir, name)
	if cur, err := os.ReadFile(path); err == nil && bytes.Equal(cur, content) {
		m.log.Info().Str("unit", name).Msg("unit unchanged, skipping write")
		return nil
	}
	if err := os.MkdirAll(m.unitDir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "creating %s", m.unitDir)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "writing %s", path)
	}
	m.log.Info().Str("unit", name).Str("path", path).Msg("unit installed")
	return nil
}

// LoadModule loads a kernel module via modprobe
func (m *Manager) LoadModule(ctx context.Context, module string) error {
	if err := m.run.Run(ctx, "modprobe", module); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeModuleLoad, "loading kernel module %s", module)
	}
	return nil
}

// PersistModule records the module in the boot-time autoload configuration
func (m *Manager) PersistModule(module string) error {
	if err := os.MkdirAll(m.modulesLoadDir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "creating %s", m.modulesLoadDir)
	}
	path := filepath.Join(m.modulesLoadDir, module+".conf")
	if err := os.WriteFile(path, []byte(module+"\n"), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "writing %s", path)
	}
	m.log.Info().Str("module", module).Str("path", path).Msg("module autoload configured")
	return nil
}

// Enable enables the unit in the init system
func (m *Manager) Enable(ctx context.Context, unit string) error {
	if err := m.run.Run(ctx, "systemctl", "enable", unit); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeServiceEnable, "enabling %s", unit)
	}
	return nil
}

// Restart starts (or restarts) the unit
func (m *Manager) Restart(ctx context.Context, unit string) error {
	if err := m.run.Run(ctx, "systemctl", "restart", unit); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeServiceStart, "restarting %s", unit)
	}
	return nil
}
