package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/loop"
	"github.com/tomz197/novasiege/internal/render"
	"github.com/tomz197/novasiege/internal/sfx"
	"github.com/tomz197/novasiege/internal/sound"
)

func main() {
	configPath := flag.String("config", "", "TOML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, tuning, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	// The terminal is the display, so logs only go somewhere when a file is configured.
	logger, closer, err := config.NewLogger(cfg.Logging, io.Discard, "novasiege")
	if err != nil {
		return err
	}
	defer closer.Close()

	var sink sfx.Sink = sfx.Nop{}
	if cfg.Audio.Enabled {
		player := sound.New(cfg.Audio.Volume, logger)
		if err := player.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer player.Close()
			sink = player
		}
	}

	g, err := game.New(game.Options{
		Tuning:   tuning,
		Rand:     game.NewRand(cfg.Game.Seed),
		Sound:    sink,
		Logger:   logger,
		MaxDelta: cfg.Display.MaxDelta,
	})
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := render.NewTerminal(os.Stdout, render.Options{
		MaxWidth:  cfg.Display.MaxTermWidth,
		MaxHeight: cfg.Display.MaxTermHeight,
		Profile:   termenv.EnvColorProfile(),
	})
	defer r.Close()

	in := input.StartStream(bufio.NewReader(os.Stdin))
	defer in.Stop()

	logger.Info("session started", "seed", cfg.Game.Seed, "fps", cfg.Display.TargetFPS)
	err = loop.Run(ctx, loop.Options{
		Game:          g,
		Input:         in,
		Renderer:      r,
		FrameInterval: cfg.Display.FrameInterval(),
		Logger:        logger,
	})
	logger.Info("session ended", "score", g.Score(), "high_score", g.HighScore())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
