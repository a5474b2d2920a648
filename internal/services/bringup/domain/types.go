package domain

// DefaultDelay is the daemon default for both activation delays, in seconds
const DefaultDelay = 0.4

// KernelModule is the i2c device-interface module the daemon depends on
const KernelModule = "i2c-dev"

// Keyboard maps a physical keyboard layout to the key code the daemon sends
// for the percent symbol ("5" key on qwerty, apostrophe key on azerty)
type Keyboard struct {
	Name          string
	PercentageKey int
}

// Keyboards is the fixed two-option set offered during collection
var Keyboards = []Keyboard{
	{Name: "qwerty", PercentageKey: 6},
	{Name: "azerty", PercentageKey: 40},
}

// KeyboardByName resolves a keyboard layout by its lowercase name
func KeyboardByName(name string) (Keyboard, bool) {
	for _, k := range Keyboards {
		if k.Name == name {
			return k, true
		}
	}
	return Keyboard{}, false
}

// Config is the validated configuration collected before bring-up executes
type Config struct {
	Model          string  `json:"model"            validate:"required,layoutname"`
	PercentageKey  int     `json:"percentage_key"   validate:"oneof=6 40"`
	NumpadDelay    float64 `json:"numpad_delay"     validate:"gte=0"`
	CustomKeyDelay float64 `json:"custom_key_delay" validate:"gte=0"`
}

// Paths is the explicit filesystem wiring of a bring-up run.
// Nothing is resolved from the working directory
type Paths struct {
	SourceDir      string // driver payload: asus_touchpad.py + numpad_layouts/
	InstallDir     string // installation target for the payload
	UnitDir        string // systemd unit directory
	ModulesLoadDir string // boot-time module autoload configuration directory
	SysfsRoot      string // usually /sys
	DevRoot        string // usually /dev
}

// DefaultPaths returns the production path wiring
func DefaultPaths() Paths {
	return Paths{
		SourceDir:      ".",
		InstallDir:     "/usr/share/asus_touchpad_numpad-driver",
		UnitDir:        "/lib/systemd/system",
		ModulesLoadDir: "/etc/modules-load.d",
		SysfsRoot:      "/sys",
		DevRoot:        "/dev",
	}
}
