package module

import (
	"strings"

	"asusnumpad/internal/platform/config"
	"asusnumpad/internal/services/bringup/domain"
)

// Options controls bring-up behavior. Values may also be read from env
type Options struct {
	Paths domain.Paths

	// Preset bypasses interactive collection (scripted installs, tests)
	Preset *domain.Config
}

// FromConfig reads options using the SETUP_ prefix
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SETUP_")
	def := domain.DefaultPaths()
	o := Options{
		Paths: domain.Paths{
			SourceDir:      sc.MayPath("SOURCE_DIR", def.SourceDir),
			InstallDir:     sc.MayPath("INSTALL_DIR", def.InstallDir),
			UnitDir:        sc.MayPath("UNIT_DIR", def.UnitDir),
			ModulesLoadDir: sc.MayPath("MODULES_LOAD_DIR", def.ModulesLoadDir),
			SysfsRoot:      sc.MayPath("SYSFS_ROOT", def.SysfsRoot),
			DevRoot:        sc.MayPath("DEV_ROOT", def.DevRoot),
		},
	}

	// SETUP_MODEL switches the run non-interactive, same as the -model flag
	if model := sc.MayString("MODEL", ""); model != "" {
		kbName := strings.ToLower(sc.MayEnum("KEYBOARD", "qwerty", "qwerty", "azerty"))
		kb, _ := domain.KeyboardByName(kbName)
		o.Preset = &domain.Config{
			Model:          model,
			PercentageKey:  kb.PercentageKey,
			NumpadDelay:    sc.MayFloat64("NUMPAD_DELAY", domain.DefaultDelay),
			CustomKeyDelay: sc.MayFloat64("CUSTOM_KEY_DELAY", domain.DefaultDelay),
		}
	}
	return o
}
