// Package i2cdev talks to Linux i2c character devices and sysfs.
// It implements the bus port used by the bring-up service
package i2cdev

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"

	"asusnumpad/internal/core/i2cscan"
	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/logger"
)

// I2C_SLAVE_FORCE from linux/i2c-dev.h; forced because the kernel driver
// already claims the touchpad address
const ioctlSlaveForce = 0x0706

// Bus enumerates and probes i2c buses through sysfs and /dev
type Bus struct {
	sysfsRoot string
	devRoot   string
	log       logger.Logger
}

// New returns a Bus rooted at the given sysfs and dev trees
// (production: "/sys" and "/dev"; tests point elsewhere)
func New(sysfsRoot, devRoot string, log logger.Logger) *Bus {
	return &Bus{sysfsRoot: sysfsRoot, devRoot: devRoot, log: log}
}

// Enumerate lists candidate buses whose adapter matches the touchpad controller chipset
func (b *Bus) Enumerate(_ context.Context) ([]i2cscan.Candidate, error) {
	cands, err := i2cscan.Scan(b.sysfsRoot)
	if err != nil {
		return nil, err
	}
	b.log.Debug().Int("candidates", len(cands)).Msg("i2c enumeration done")
	return cands, nil
}

// Probe writes the 13-byte backlight-on packet to the controller address on the
// given bus, then the matching off packet so detection leaves the numpad dark.
// Any open/ioctl/write failure means the touchpad is not on this bus
func (b *Bus) Probe(ctx context.Context, bus int) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "probe cancelled")
	}

	dev := filepath.Join(b.devRoot, fmt.Sprintf("i2c-%d", bus))
	fd, err := unix.Open(dev, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "opening %s", dev)
	}
	defer unix.Close(fd)

	if err := unix.IoctlSetInt(fd, ioctlSlaveForce, i2cscan.ProbeAddr); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "claiming address %#x on %s", i2cscan.ProbeAddr, dev)
	}

	if err := writeFull(fd, i2cscan.PayloadOn()); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "probe write to %s", dev)
	}
	if err := writeFull(fd, i2cscan.PayloadOff()); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "backlight-off write to %s", dev)
	}

	b.log.Debug().Int("bus", bus).Msg("touchpad controller answered probe")
	return nil
}

// writeFull insists on a complete single transfer; the controller rejects split writes
func writeFull(fd int, payload []byte) error {
	n, err := unix.Write(fd, payload)
	if err != nil {
		return err
	}
	if n != len(payload) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(payload))
	}
	return nil
}
