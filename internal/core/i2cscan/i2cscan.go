// Package i2cscan discovers candidate i2c buses for the touchpad numpad controller.
// The controller sits behind the Synopsys DesignWare i2c adapter on supported
// ASUS models; every other adapter on the machine is noise
package i2cscan

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	perr "asusnumpad/internal/platform/errors"
)

// AdapterMatch selects buses whose adapter description names the touchpad controller chipset
const AdapterMatch = "DesignWare"

// ProbeAddr is the controller's 7-bit device address
const ProbeAddr = 0x15

// PayloadOn is the 13-byte backlight-on packet used as the presence probe.
// Byte 11 is brightness (0x01 = full); trailer 0xad is fixed
func PayloadOn() []byte {
	return []byte{0x05, 0x00, 0x3d, 0x03, 0x06, 0x00, 0x07, 0x00, 0x0d, 0x14, 0x03, 0x01, 0xad}
}

// PayloadOff is the matching backlight-off packet sent after a successful probe
// so detection leaves the numpad dark
func PayloadOff() []byte {
	return []byte{0x05, 0x00, 0x3d, 0x03, 0x06, 0x00, 0x07, 0x00, 0x0d, 0x14, 0x03, 0x00, 0xad}
}

// Candidate is a discovered i2c bus that may host the touchpad controller
type Candidate struct {
	Index   int    // bus index N of /dev/i2c-N
	Adapter string // adapter description from the sysfs name attribute
}

// bus directories are named i2c-<index>
var busDirRe = regexp.MustCompile(`^i2c-(\d+)$`)

// Match reports whether a sysfs bus directory plus adapter name is a candidate
func Match(dir, adapter string) (Candidate, bool) {
	m := busDirRe.FindStringSubmatch(dir)
	if m == nil {
		return Candidate{}, false
	}
	if !strings.Contains(adapter, AdapterMatch) {
		return Candidate{}, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return Candidate{}, false
	}
	return Candidate{Index: idx, Adapter: strings.TrimSpace(adapter)}, true
}

// Scan enumerates i2c buses under sysfsRoot and returns candidates in bus order.
// An empty result is not an error; callers own the no-interface gate
func Scan(sysfsRoot string) ([]Candidate, error) {
	adapterDir := filepath.Join(sysfsRoot, "class", "i2c-adapter")
	entries, err := os.ReadDir(adapterDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "reading %s", adapterDir)
	}

	var out []Candidate
	for _, e := range entries {
		raw, err := os.ReadFile(filepath.Join(adapterDir, e.Name(), "name"))
		if err != nil {
			// buses without a readable name attribute are skipped, not fatal
			continue
		}
		if c, ok := Match(e.Name(), strings.TrimSpace(string(raw))); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}
