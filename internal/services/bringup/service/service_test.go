package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"asusnumpad/internal/core/i2cscan"
	"asusnumpad/internal/modkit"
	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/logger"
	kit "asusnumpad/internal/platform/testkit"
	"asusnumpad/internal/services/bringup/domain"
)

// fakes

type fakeBus struct {
	cands  []i2cscan.Candidate
	okBus  int // bus index that answers the probe; -1 = none
	probed []int
}

func (f *fakeBus) Enumerate(context.Context) ([]i2cscan.Candidate, error) {
	return f.cands, nil
}

func (f *fakeBus) Probe(_ context.Context, bus int) error {
	f.probed = append(f.probed, bus)
	if bus == f.okBus {
		return nil
	}
	return perr.IOf("no answer on i2c-%d", bus)
}

type fakeSys struct {
	ops    []string
	unit   []byte
	failOp string
	failAs error
}

func (f *fakeSys) step(op string) error {
	f.ops = append(f.ops, op)
	if op == f.failOp {
		return f.failAs
	}
	return nil
}

func (f *fakeSys) InstallUnit(name string, content []byte) error {
	f.unit = content
	return f.step("install-unit " + name)
}
func (f *fakeSys) LoadModule(_ context.Context, m string) error { return f.step("load " + m) }
func (f *fakeSys) PersistModule(m string) error                 { return f.step("persist " + m) }
func (f *fakeSys) Enable(_ context.Context, u string) error     { return f.step("enable " + u) }
func (f *fakeSys) Restart(_ context.Context, u string) error    { return f.step("restart " + u) }

type fakeDeps struct{ calls int }

func (f *fakeDeps) InstallDeps(context.Context) error {
	f.calls++
	return nil
}

type fakeCollector struct {
	cfg domain.Config
	err error
}

func (f *fakeCollector) Collect([]string) (domain.Config, error) { return f.cfg, f.err }

// helpers

func cand(idx int) i2cscan.Candidate {
	return i2cscan.Candidate{Index: idx, Adapter: "Synopsys DesignWare I2C adapter"}
}

func sourceTree(t *testing.T, models ...string) string {
	t.Helper()
	dir := t.TempDir()
	kit.WriteFile(t, dir, "asus_touchpad.py", "#!/usr/bin/env python3\n")
	for _, m := range models {
		kit.WriteFile(t, dir, fmt.Sprintf("numpad_layouts/%s.py", m), "keys = []\n")
	}
	return dir
}

func asRoot(t *testing.T) {
	t.Helper()
	kit.Serial(t)
	kit.Swap(t, &geteuid, func() int { return 0 })
}

func validPreset() *domain.Config {
	return &domain.Config{Model: "ux433fa", PercentageKey: 6, NumpadDelay: 0.4, CustomKeyDelay: 0.4}
}

func newSvc(t *testing.T, src string, ports domain.Ports, preset *domain.Config) *Svc {
	t.Helper()
	if ports.Collector == nil {
		ports.Collector = &fakeCollector{cfg: domain.Config{}}
	}
	deps := modkit.Deps{Log: *logger.Named("bringup-test")}
	return New(deps, Config{
		Paths: domain.Paths{
			SourceDir:      src,
			InstallDir:     t.TempDir(),
			UnitDir:        t.TempDir(),
			ModulesLoadDir: t.TempDir(),
		},
		Preset: preset,
	}, ports)
}

// privilege gate

func TestRun_PermissionGate(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &geteuid, func() int { return 1000 })

	bus := &fakeBus{cands: []i2cscan.Candidate{cand(1)}, okBus: 1}
	sys := &fakeSys{}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: sys}, validPreset())

	err := svc.Run(context.Background(), false)
	if !perr.IsCode(err, perr.ErrorCodePermission) {
		t.Fatalf("code = %v, want Permission", perr.CodeOf(err))
	}
	// zero further actions: no module load, no probes, no file writes
	if len(sys.ops) != 0 || len(bus.probed) != 0 {
		t.Fatalf("gate must stop everything: ops=%v probed=%v", sys.ops, bus.probed)
	}
}

// probe selection

func TestLocate_ShortCircuitsOnFirstSuccess(t *testing.T) {
	asRoot(t)
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(2), cand(5), cand(7)}, okBus: 5}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: &fakeSys{}}, validPreset())

	got, err := svc.locate(context.Background())
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if got.Index != 5 {
		t.Fatalf("selected bus %d, want 5", got.Index)
	}
	if want := []int{2, 5}; !reflect.DeepEqual(bus.probed, want) {
		t.Fatalf("probed %v, want %v (no probing past the first success)", bus.probed, want)
	}
}

func TestLocate_EmptyCandidateSet(t *testing.T) {
	asRoot(t)
	bus := &fakeBus{okBus: -1}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: &fakeSys{}}, validPreset())

	_, err := svc.locate(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeNoInterface) {
		t.Fatalf("code = %v, want NoInterface", perr.CodeOf(err))
	}
	if len(bus.probed) != 0 {
		t.Fatalf("no probing may happen on an empty set, probed %v", bus.probed)
	}
}

func TestLocate_AllCandidatesFail(t *testing.T) {
	asRoot(t)
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(1), cand(2)}, okBus: -1}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: &fakeSys{}}, validPreset())

	_, err := svc.locate(context.Background())
	if !perr.IsCode(err, perr.ErrorCodeDeviceNotFound) {
		t.Fatalf("code = %v, want DeviceNotFound", perr.CodeOf(err))
	}
	if want := []int{1, 2}; !reflect.DeepEqual(bus.probed, want) {
		t.Fatalf("probed %v, want %v", bus.probed, want)
	}
}

// full sequence

func TestRun_HappyPathOrdering(t *testing.T) {
	asRoot(t)
	src := sourceTree(t, "ux433fa", "gx701")
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(1)}, okBus: 1}
	sys := &fakeSys{}
	svc := newSvc(t, src, domain.Ports{Bus: bus, Sys: sys}, validPreset())

	if err := svc.Run(context.Background(), false); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"load i2c-dev",
		"install-unit asus_touchpad_numpad.service",
		"persist i2c-dev",
		"enable asus_touchpad_numpad.service",
		"restart asus_touchpad_numpad.service",
	}
	if !reflect.DeepEqual(sys.ops, want) {
		t.Fatalf("ops = %v, want %v", sys.ops, want)
	}

	unit := string(sys.unit)
	kit.MustContain(t, unit, "--model ux433fa")
	kit.MustContain(t, unit, "--percentage-key 6")
	kit.MustContain(t, unit, "--numpad-delay 0.4")
	kit.MustContain(t, unit, "--custom-key-delay 0.4")

	// payload installed
	if _, err := os.Stat(filepath.Join(svc.paths.InstallDir, "asus_touchpad.py")); err != nil {
		t.Fatalf("driver script not installed: %v", err)
	}
	for _, m := range []string{"ux433fa", "gx701"} {
		if _, err := os.Stat(filepath.Join(svc.paths.InstallDir, "numpad_layouts", m+".py")); err != nil {
			t.Fatalf("layout %s not installed: %v", m, err)
		}
	}
}

func TestRun_WithDeps(t *testing.T) {
	asRoot(t)
	deps := &fakeDeps{}
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(1)}, okBus: 1}
	svc := newSvc(t, sourceTree(t, "ux433fa"),
		domain.Ports{Bus: bus, Sys: &fakeSys{}, Deps: deps}, validPreset())

	if err := svc.Run(context.Background(), true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if deps.calls != 1 {
		t.Fatalf("InstallDeps calls = %d, want 1", deps.calls)
	}

	deps2 := &fakeDeps{}
	bus2 := &fakeBus{cands: []i2cscan.Candidate{cand(1)}, okBus: 1}
	svc2 := newSvc(t, sourceTree(t, "ux433fa"),
		domain.Ports{Bus: bus2, Sys: &fakeSys{}, Deps: deps2}, validPreset())
	if err := svc2.Run(context.Background(), false); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if deps2.calls != 0 {
		t.Fatalf("InstallDeps must not run without the deps mode")
	}
}

func TestRun_EnableFailureStopsBeforeRestart(t *testing.T) {
	asRoot(t)
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(1)}, okBus: 1}
	sys := &fakeSys{
		failOp: "enable asus_touchpad_numpad.service",
		failAs: perr.ServiceEnablef("enabling asus_touchpad_numpad.service"),
	}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: sys}, validPreset())

	err := svc.Run(context.Background(), false)
	if !perr.IsCode(err, perr.ErrorCodeServiceEnable) {
		t.Fatalf("code = %v, want ServiceEnable", perr.CodeOf(err))
	}
	for _, op := range sys.ops {
		if strings.HasPrefix(op, "restart") {
			t.Fatalf("restart must not run after a failed enable: %v", sys.ops)
		}
	}
	// no rollback: the unit write already happened and stays
	if sys.unit == nil {
		t.Fatalf("unit should have been installed before the failing gate")
	}
}

// configuration

func TestConfiguration_PresetValidation(t *testing.T) {
	asRoot(t)
	bad := validPreset()
	bad.NumpadDelay = -1
	svc := newSvc(t, sourceTree(t, "ux433fa"),
		domain.Ports{Bus: &fakeBus{}, Sys: &fakeSys{}}, bad)

	_, err := svc.configuration([]string{"ux433fa"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("code = %v, want Validation", perr.CodeOf(err))
	}
}

func TestConfiguration_UnknownModel(t *testing.T) {
	asRoot(t)
	preset := validPreset()
	preset.Model = "ux9999"
	svc := newSvc(t, sourceTree(t, "ux433fa"),
		domain.Ports{Bus: &fakeBus{}, Sys: &fakeSys{}}, preset)

	_, err := svc.configuration([]string{"ux433fa"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidOption) {
		t.Fatalf("code = %v, want InvalidOption", perr.CodeOf(err))
	}
}

func TestConfiguration_CollectorErrorPropagates(t *testing.T) {
	asRoot(t)
	col := &fakeCollector{err: perr.InvalidOptionf("aborted by user")}
	svc := newSvc(t, sourceTree(t, "ux433fa"),
		domain.Ports{Bus: &fakeBus{}, Sys: &fakeSys{}, Collector: col}, nil)

	_, err := svc.configuration([]string{"ux433fa"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidOption) {
		t.Fatalf("code = %v, want InvalidOption", perr.CodeOf(err))
	}
}

// model enumeration

func TestAvailableModels(t *testing.T) {
	asRoot(t)
	src := sourceTree(t, "ux581l", "gx701", "m433ia")
	kit.WriteFile(t, src, "numpad_layouts/__init__.py", "")
	kit.WriteFile(t, src, "numpad_layouts/README.md", "docs")
	svc := newSvc(t, src, domain.Ports{Bus: &fakeBus{}, Sys: &fakeSys{}}, validPreset())

	got, err := svc.availableModels()
	if err != nil {
		t.Fatalf("availableModels: %v", err)
	}
	if want := []string{"gx701", "m433ia", "ux581l"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("models = %v, want %v", got, want)
	}
}

func TestAvailableModels_EmptyDir(t *testing.T) {
	asRoot(t)
	src := t.TempDir()
	kit.WriteFile(t, src, "asus_touchpad.py", "")
	if err := os.MkdirAll(filepath.Join(src, "numpad_layouts"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	svc := newSvc(t, src, domain.Ports{Bus: &fakeBus{}, Sys: &fakeSys{}}, validPreset())

	if _, err := svc.availableModels(); err == nil {
		t.Fatalf("empty layout dir must fail")
	}
}

// detect

func TestDetect(t *testing.T) {
	asRoot(t)
	bus := &fakeBus{cands: []i2cscan.Candidate{cand(3)}, okBus: 3}
	sys := &fakeSys{}
	svc := newSvc(t, sourceTree(t, "ux433fa"), domain.Ports{Bus: bus, Sys: sys}, nil)

	got, err := svc.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if got.Index != 3 {
		t.Fatalf("bus = %d, want 3", got.Index)
	}
	if want := []string{"load i2c-dev"}; !reflect.DeepEqual(sys.ops, want) {
		t.Fatalf("Detect must only load the module, ops = %v", sys.ops)
	}
}
