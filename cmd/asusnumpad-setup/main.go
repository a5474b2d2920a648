package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"asusnumpad/internal/core/version"
	"asusnumpad/internal/modkit"
	"asusnumpad/internal/modkit/module"
	"asusnumpad/internal/platform/config"
	perr "asusnumpad/internal/platform/errors"
	"asusnumpad/internal/platform/execx"
	"asusnumpad/internal/platform/logger"

	"asusnumpad/internal/services/bringup/domain"
	bringupmod "asusnumpad/internal/services/bringup/module"

	"github.com/google/uuid"
)

func main() {
	root := config.New()
	runID := uuid.NewString()

	logger.Init(logger.FromEnv())
	l := logger.Named("setup")
	ctx := logger.WithRun(context.Background(), runID)

	bi := version.Info()
	l.Debug().Str("version", bi.Version).Str("commit", bi.Commit).Msg("starting")

	var (
		withDeps  = flag.Bool("deps", false, "install the daemon's packaged dependencies first")
		sourceDir = flag.String("source-dir", "", "driver payload directory (default: current directory)")
		model     = flag.String("model", "", "layout model name; skips the interactive menu when set")
		keyboard  = flag.String("keyboard", "qwerty", "keyboard layout for -model runs (qwerty or azerty)")
		numDelay  = flag.Float64("numpad-delay", domain.DefaultDelay, "numpad activation delay in seconds for -model runs")
		keyDelay  = flag.Float64("custom-key-delay", domain.DefaultDelay, "custom key activation delay in seconds for -model runs")
	)
	flag.Parse()

	// "deps" as a bare argument is accepted too, matching the documented
	// invocation `sudo ./asusnumpad-setup deps`
	for _, arg := range flag.Args() {
		if arg == "deps" {
			*withDeps = true
		}
	}

	opts := bringupmod.Options{
		Paths: domain.Paths{SourceDir: *sourceDir},
	}
	if *model != "" {
		kb, ok := domain.KeyboardByName(*keyboard)
		if !ok {
			fail(l, perr.InvalidOptionf("unknown keyboard layout %q (want qwerty or azerty)", *keyboard))
		}
		opts.Preset = &domain.Config{
			Model:          *model,
			PercentageKey:  kb.PercentageKey,
			NumpadDelay:    *numDelay,
			CustomKeyDelay: *keyDelay,
		}
	}

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
		Run: execx.NewSystem(*logger.Named("exec")),
	}

	bm := bringupmod.New(deps, opts)
	module.Register(bm.Name(), bm.Ports())

	ports := bm.Ports().(bringupmod.Ports)
	if err := ports.Runner.Run(ctx, *withDeps); err != nil {
		fail(l, err)
	}
	l.Info().Str("run_id", runID).Msg("bring-up complete")
}

// fail reports the error on both channels: a structured log line and a
// plain one-liner for the terminal, then exits non-zero
func fail(l *logger.Logger, err error) {
	l.Error().Err(err).Str("code", perr.CodeOf(err).String()).Msg("bring-up failed")
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(perr.ExitStatus(err))
}
