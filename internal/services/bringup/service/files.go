package service

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	perr "asusnumpad/internal/platform/errors"
)

// driverScript is the daemon entry point shipped in the source tree
const driverScript = "asus_touchpad.py"

// installPayload copies the daemon script and every layout module into the
// installation tree. Partial copies are left in place on failure
func (s *Svc) installPayload() error {
	layoutDst := filepath.Join(s.paths.InstallDir, "numpad_layouts")
	if err := os.MkdirAll(layoutDst, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "creating %s", layoutDst)
	}

	src := filepath.Join(s.paths.SourceDir, driverScript)
	dst := filepath.Join(s.paths.InstallDir, driverScript)
	if err := copyFile(src, dst, 0o755); err != nil {
		return err
	}

	layoutSrc := filepath.Join(s.paths.SourceDir, "numpad_layouts")
	entries, err := os.ReadDir(layoutSrc)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "reading %s", layoutSrc)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".py") {
			continue
		}
		if err := copyFile(filepath.Join(layoutSrc, e.Name()), filepath.Join(layoutDst, e.Name()), 0o644); err != nil {
			return err
		}
	}

	s.deps.Log.Info().Str("dir", s.paths.InstallDir).Msg("driver payload installed")
	return nil
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "opening %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return perr.Wrapf(err, perr.ErrorCodeIO, "copying %s", src)
	}
	if err := out.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "closing %s", dst)
	}
	return nil
}
