package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/buddy/audio"
	"github.com/lixenwraith/buddy/config"
	"github.com/lixenwraith/buddy/engine"
	"github.com/lixenwraith/buddy/logging"
	"github.com/lixenwraith/buddy/terminal"
)

func runBuddy(cmd *cobra.Command, _ []string) (err error) {
	store, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	clock := engine.NewMonotonicTimeProvider()
	session := engine.NewSession(cfg, clock)

	logger, err := logging.New(logging.Config{
		Dir:     cfg.Log.Dir,
		File:    cfg.Log.File,
		Level:   cfg.Log.Level,
		Session: session.ID.String(),
	})
	if err != nil {
		return err
	}
	defer logger.Close()
	log := logger.Component("main")

	screen, err := terminal.New(terminal.ColorMode(cfg.Render.ColorMode))
	if err != nil {
		return err
	}

	restored := false
	restore := func() {
		if !restored {
			restored = true
			screen.Fini()
		}
	}
	defer func() {
		if r := recover(); r != nil {
			restore()
			terminal.EmergencyReset(os.Stdout)
			log.Error().Interface("panic", r).Msg("crashed")
			err = fmt.Errorf("crashed: %v\n%s", r, debug.Stack())
		}
	}()
	defer restore()

	chimes := audio.NewSoundManager(cfg.Chimes())
	if err := chimes.Initialize(); err != nil {
		if !errors.Is(err, audio.ErrDisabled) {
			log.Warn().Err(err).Msg("audio unavailable, continuing without chimes")
		}
	} else {
		defer chimes.Cleanup()
	}

	loop := engine.NewLoop(session, screen,
		engine.WithClock(clock),
		engine.WithChimes(chimes),
		engine.WithLogger(logger.Component("loop")),
	)

	watching := store.Watch(func(next config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("config reload rejected")
			return
		}
		loop.Reload(withMute(cmd, next))
	})
	log.Info().
		Str("version", version).
		Str("config", store.File()).
		Bool("watching", watching).
		Bool("audio", chimes.Initialized()).
		Msg("buddy starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil {
		restore()
		terminal.EmergencyReset(os.Stdout)
		log.Error().Err(err).Msg("loop failed")
		return err
	}

	log.Info().Fields(session.Stats.Snapshot()).Msg("session ended")
	return nil
}
