// Package loop drives a game through the Input -> Update -> Draw cycle at a
// fixed frame rate.
package loop

//go:generate go tool mockgen -destination=./mocks/loop_mock.go -package=mocks . Renderer,InputSource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
)

// DefaultFrameInterval is one frame at 60 FPS.
const DefaultFrameInterval = time.Second / 60

// ErrIdle is returned when no input arrives within the idle timeout.
var ErrIdle = errors.New("loop: idle timeout")

// Renderer draws a published snapshot.
type Renderer interface {
	Render(s *game.Snapshot) error
}

// InputSource yields the actions for the next tick. Closed reports that the
// source has ended and no more input will come.
type InputSource interface {
	Poll() input.Actions
	Closed() bool
}

// Options configures Run.
type Options struct {
	Game          *game.Game
	Input         InputSource
	Renderer      Renderer
	FrameInterval time.Duration // defaults to DefaultFrameInterval
	IdleTimeout   time.Duration // 0 disables
	Logger        *log.Logger
}

// Run ticks the game until it quits, the input closes, the context ends, the
// player idles out or rendering fails. A quit or closed input returns nil.
func Run(ctx context.Context, opts Options) error {
	if opts.Game == nil || opts.Input == nil || opts.Renderer == nil {
		return errors.New("loop: game, input and renderer are required")
	}
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := opts.Game

	if err := opts.Renderer.Render(g.Snapshot()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	timer := time.NewTimer(frame)
	defer timer.Stop()

	lastTime := time.Now()
	lastInput := lastTime
	frames := 0

	for {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		in := opts.Input.Poll()
		if in.Any() {
			lastInput = frameStart
		} else if opts.IdleTimeout > 0 && frameStart.Sub(lastInput) > opts.IdleTimeout {
			logger.Info("idle timeout", "after", opts.IdleTimeout, "frames", frames)
			return ErrIdle
		}

		// ===== UPDATE PHASE =====
		g.Tick(delta, in)
		frames++

		// ===== DRAW PHASE =====
		if err := opts.Renderer.Render(g.Snapshot()); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if g.Quitting() {
			logger.Debug("quit requested", "frames", frames, "score", g.Score())
			return nil
		}
		if opts.Input.Closed() {
			logger.Debug("input closed", "frames", frames)
			return nil
		}

		// ===== FRAME TIMING =====
		wait := frame - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
}
