package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/sfx"
	"github.com/tomz197/novasiege/internal/sound"
	"github.com/tomz197/novasiege/internal/window"
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

	logger, closer, err := config.NewLogger(cfg.Logging, os.Stderr, "novasiege")
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

	logger.Info("opening window", "scale", cfg.Display.WindowScale, "tps", cfg.Display.TargetFPS)
	return window.Run(g, cfg.Display.WindowScale, cfg.Display.TargetFPS, logger)
}
