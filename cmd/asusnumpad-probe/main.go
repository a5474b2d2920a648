package main

import (
	"context"
	"fmt"
	"os"

	"asusnumpad/internal/core/version"
	"asusnumpad/internal/modkit"
	"asusnumpad/internal/modkit/module"
	"asusnumpad/internal/platform/config"
	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/execx"
	"asusnumpad/internal/platform/logger"

	bringupmod "asusnumpad/internal/services/bringup/module"

	"github.com/google/uuid"
)

// asusnumpad-probe locates the touchpad controller without installing
// anything. Useful when filing a "no interface found" report
func main() {
	root := config.New()

	logger.Init(logger.FromEnv())
	l := logger.Named("probe")
	ctx := logger.WithRun(context.Background(), uuid.NewString())

	bi := version.Info()
	l.Debug().Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting")

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		Run: execx.NewSystem(*logger.Named("exec")),
	}

	bm := bringupmod.New(deps, bringupmod.Options{})
	module.Register(bm.Name(), bm.Ports())

	ports := bm.Ports().(bringupmod.Ports)
	cand, err := ports.Detector.Detect(ctx)
	if err != nil {
		l.Error().Err(err).Str("code", perr.CodeOf(err).String()).Msg("probe failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(perr.ExitStatus(err))
	}
	fmt.Printf("touchpad controller found on i2c-%d (%s)\n", cand.Index, cand.Adapter)
}
