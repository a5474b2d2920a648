// Package service contains the bring-up workflows
package service

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"asusnumpad/internal/core/i2cscan"
	"asusnumpad/internal/core/unitfile"
	"asusnumpad/internal/modkit"
	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/validate"
	"asusnumpad/internal/services/bringup/domain"
)

// Service defines the bring-up service contract
type Service interface {
	domain.RunnerPort
	domain.DetectorPort
}

// Config carries runtime knobs for the orchestrator
type Config struct {
	Paths domain.Paths

	// Preset, when non-nil, bypasses interactive collection entirely
	// (scripted/tested configuration injection)
	Preset *domain.Config
}

// Svc implements the bring-up service.
// Every step is a hard gate: first failure aborts, nothing is rolled back.
// The surrounding system owns idempotent reinstallation
type Svc struct {
	deps   modkit.Deps
	ports  domain.Ports
	paths  domain.Paths
	preset *domain.Config
}

// geteuid is a seam so the privilege gate is testable
var geteuid = os.Geteuid

// New constructs a bring-up service
func New(deps modkit.Deps, cfg Config, ports domain.Ports) *Svc {
	if ports.Bus == nil || ports.Sys == nil || ports.Collector == nil {
		panic("bringup.Service requires bus, sys and collector ports")
	}
	return &Svc{deps: deps, ports: ports, paths: cfg.Paths, preset: cfg.Preset}
}

// Run executes the bring-up sequence
func (s *Svc) Run(ctx context.Context, withDeps bool) error {
	if err := s.requireRoot(); err != nil {
		return err
	}

	if withDeps && s.ports.Deps != nil {
		if err := s.ports.Deps.InstallDeps(ctx); err != nil {
			return err
		}
	}

	if err := s.ports.Sys.LoadModule(ctx, domain.KernelModule); err != nil {
		return err
	}

	cand, err := s.locate(ctx)
	if err != nil {
		return err
	}
	s.deps.Log.Info().Int("bus", cand.Index).Str("adapter", cand.Adapter).Msg("touchpad interface selected")

	models, err := s.availableModels()
	if err != nil {
		return err
	}

	cfg, err := s.configuration(models)
	if err != nil {
		return err
	}

	unit, err := unitfile.Render(unitfile.Values{
		Model:          cfg.Model,
		PercentageKey:  cfg.PercentageKey,
		NumpadDelay:    cfg.NumpadDelay,
		CustomKeyDelay: cfg.CustomKeyDelay,
	})
	if err != nil {
		return err
	}
	if err := s.ports.Sys.InstallUnit(unitfile.UnitName, unit); err != nil {
		return err
	}

	if err := s.installPayload(); err != nil {
		return err
	}

	if err := s.ports.Sys.PersistModule(domain.KernelModule); err != nil {
		return err
	}

	if err := s.ports.Sys.Enable(ctx, unitfile.UnitName); err != nil {
		return err
	}
	if err := s.ports.Sys.Restart(ctx, unitfile.UnitName); err != nil {
		return err
	}

	s.deps.Log.Info().
		Str("model", cfg.Model).
		Int("percentage_key", cfg.PercentageKey).
		Float64("numpad_delay", cfg.NumpadDelay).
		Float64("custom_key_delay", cfg.CustomKeyDelay).
		Msg("bring-up complete")
	return nil
}

// Detect locates the touchpad interface without installing anything
func (s *Svc) Detect(ctx context.Context) (i2cscan.Candidate, error) {
	if err := s.requireRoot(); err != nil {
		return i2cscan.Candidate{}, err
	}
	if err := s.ports.Sys.LoadModule(ctx, domain.KernelModule); err != nil {
		return i2cscan.Candidate{}, err
	}
	return s.locate(ctx)
}

// requireRoot gates every entry point; the i2c device and the unit directory
// are root-owned
func (s *Svc) requireRoot() error {
	if geteuid() != 0 {
		return perr.Permissionf("this installer must be run as root")
	}
	return nil
}

// locate probes candidates in enumeration order and short-circuits on the
// first bus that accepts the probe; later candidates are never touched
func (s *Svc) locate(ctx context.Context) (i2cscan.Candidate, error) {
	cands, err := s.ports.Bus.Enumerate(ctx)
	if err != nil {
		return i2cscan.Candidate{}, err
	}
	if len(cands) == 0 {
		return i2cscan.Candidate{}, perr.NoInterfacef(
			"no i2c interface matches the %s controller chipset", i2cscan.AdapterMatch)
	}
	for _, c := range cands {
		if err := s.ports.Bus.Probe(ctx, c.Index); err != nil {
			s.deps.Log.Debug().Int("bus", c.Index).Err(err).Msg("candidate rejected")
			continue
		}
		return c, nil
	}
	return i2cscan.Candidate{}, perr.DeviceNotFoundf(
		"touchpad controller did not answer on any of %d candidate buses", len(cands))
}

// configuration returns the validated run configuration, either from the
// preset or via interactive collection
func (s *Svc) configuration(models []string) (domain.Config, error) {
	var cfg domain.Config
	if s.preset != nil {
		cfg = *s.preset
	} else {
		c, err := s.ports.Collector.Collect(models)
		if err != nil {
			return domain.Config{}, err
		}
		cfg = c
	}

	if err := validate.Struct(cfg); err != nil {
		return domain.Config{}, err
	}
	if !contains(models, cfg.Model) {
		return domain.Config{}, perr.InvalidOptionf("no layout module installed for model %q", cfg.Model)
	}
	return cfg, nil
}

// availableModels enumerates installable layout module names from the source tree
func (s *Svc) availableModels() ([]string, error) {
	dir := filepath.Join(s.paths.SourceDir, "numpad_layouts")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "reading %s", dir)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".py") || strings.HasPrefix(name, "__") {
			continue
		}
		out = append(out, strings.TrimSuffix(name, ".py"))
	}
	if len(out) == 0 {
		return nil, perr.IOf("no layout modules found in %s", dir)
	}
	sort.Strings(out)
	return out, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
