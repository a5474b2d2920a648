// Package unitfile renders the systemd unit for the numpad daemon.
// The unit template ships embedded so the installer has no ambient
// working-directory dependency
package unitfile

import (
	"bytes"
	_ "embed"
	"strconv"
	"text/template"

	perr "asusnumpad/internal/platform/errors"
)

// UnitName is the service unit installed into the systemd unit directory
const UnitName = "asus_touchpad_numpad.service"

//go:embed asus_touchpad_numpad.service.tmpl
var unitTmplSrc string

var unitTmpl = template.Must(template.New(UnitName).Parse(unitTmplSrc))

// Values are the four substitution slots of the unit template
type Values struct {
	Model          string
	PercentageKey  int
	NumpadDelay    float64
	CustomKeyDelay float64
}

// rendered shadows Values with delays pre-formatted the way the daemon expects them
type rendered struct {
	Model          string
	PercentageKey  int
	NumpadDelay    string
	CustomKeyDelay string
}

// Render substitutes v into the unit template
func Render(v Values) ([]byte, error) {
	var buf bytes.Buffer
	err := unitTmpl.Execute(&buf, rendered{
		Model:          v.Model,
		PercentageKey:  v.PercentageKey,
		NumpadDelay:    formatDelay(v.NumpadDelay),
		CustomKeyDelay: formatDelay(v.CustomKeyDelay),
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeIO, "rendering service unit")
	}
	return buf.Bytes(), nil
}

// formatDelay prints seconds without exponent noise ("0.4", not "4e-01")
func formatDelay(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
