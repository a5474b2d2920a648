// Package pkgmgr installs the daemon's runtime dependencies through the first
// available system package manager. Detection is existence-of-command based,
// first match wins; machines without a supported manager are skipped silently
package pkgmgr

import (
	"context"

	"asusnumpad/internal/platform/execx"
	"asusnumpad/internal/platform/logger"
)

// manager couples a package manager command with its install verb and package set
type manager struct {
	name     string
	args     []string
	packages []string
}

// priority order matters: first resolvable command is used, the rest never run
var managers = []manager{
	{name: "apt", args: []string{"install", "-y"}, packages: []string{"libevdev2", "python3-libevdev", "i2c-tools"}},
	{name: "pacman", args: []string{"-S", "--noconfirm"}, packages: []string{"libevdev", "python-libevdev", "i2c-tools"}},
	{name: "dnf", args: []string{"install", "-y"}, packages: []string{"libevdev", "python3-libevdev", "i2c-tools"}},
}

// Installer implements the deps port
type Installer struct {
	run execx.Runner
	log logger.Logger
}

// New returns an Installer using the given command runner
func New(run execx.Runner, log logger.Logger) *Installer {
	return &Installer{run: run, log: log}
}

// InstallDeps detects the first available package manager and installs the
// daemon's dependency set with it. No supported manager found is not an error
func (i *Installer) InstallDeps(ctx context.Context) error {
	for _, m := range managers {
		if _, err := i.run.LookPath(m.name); err != nil {
			continue
		}
		i.log.Info().Str("manager", m.name).Strs("packages", m.packages).Msg("installing dependencies")
		args := append(append([]string{}, m.args...), m.packages...)
		return i.run.Run(ctx, m.name, args...)
	}
	i.log.Warn().Msg("no supported package manager found; skipping dependency installation")
	return nil
}
