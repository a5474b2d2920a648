package pkgmgr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"asusnumpad/internal/platform/execx"
	"asusnumpad/internal/platform/logger"
)

func installer(fake *execx.Fake) *Installer {
	return New(fake, *logger.Named("pkgmgr-test"))
}

func TestInstallDeps_FirstMatchWins(t *testing.T) {
	// both apt and dnf exist; only apt (higher priority) may run
	fake := &execx.Fake{Paths: map[string]string{"apt": "/usr/bin/apt", "dnf": "/usr/bin/dnf"}}
	if err := installer(fake).InstallDeps(context.Background()); err != nil {
		t.Fatalf("InstallDeps: %v", err)
	}
	calls := fake.Calls()
	if len(calls) != 1 {
		t.Fatalf("exactly one manager must be invoked, got %v", calls)
	}
	if !strings.HasPrefix(calls[0], "apt install -y ") {
		t.Fatalf("call = %q, want apt install", calls[0])
	}
	if !strings.Contains(calls[0], "i2c-tools") {
		t.Fatalf("package set missing i2c-tools: %q", calls[0])
	}
}

func TestInstallDeps_FallsThroughPriority(t *testing.T) {
	fake := &execx.Fake{Paths: map[string]string{"pacman": "/usr/bin/pacman"}}
	if err := installer(fake).InstallDeps(context.Background()); err != nil {
		t.Fatalf("InstallDeps: %v", err)
	}
	calls := fake.Calls()
	if len(calls) != 1 || !strings.HasPrefix(calls[0], "pacman -S --noconfirm ") {
		t.Fatalf("calls = %v, want pacman", calls)
	}
}

func TestInstallDeps_NoManagerIsSilentSkip(t *testing.T) {
	fake := &execx.Fake{}
	if err := installer(fake).InstallDeps(context.Background()); err != nil {
		t.Fatalf("missing manager must not error: %v", err)
	}
	if len(fake.Calls()) != 0 {
		t.Fatalf("nothing should run, got %v", fake.Calls())
	}
}

func TestInstallDeps_ManagerFailurePropagates(t *testing.T) {
	fake := &execx.Fake{
		Paths:  map[string]string{"apt": "/usr/bin/apt"},
		RunErr: func(string, []string) error { return errors.New("dpkg lock held") },
	}
	if err := installer(fake).InstallDeps(context.Background()); err == nil {
		t.Fatalf("manager failure must propagate")
	}
}
