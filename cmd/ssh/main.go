package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/draw"
	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/loop"
	"github.com/tomz197/novasiege/internal/render"
	"github.com/tomz197/novasiege/internal/sfx"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "TOML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ssh server error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, tuning, err := config.Resolve(configPath)
	if err != nil {
		return err
	}

	logger, closer, err := config.NewLogger(cfg.Logging, os.Stderr, "novasiege-ssh")
	if err != nil {
		return err
	}
	defer closer.Close()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config",
		"host", cfg.Server.Host, "port", cfg.Server.Port,
		"host_key", cfg.Server.HostKeyPath, "idle_timeout", cfg.Server.IdleTimeout,
		"working_dir", workingDir)

	h := &handler{cfg: cfg, tuning: tuning, logger: logger, scores: &highScore{}}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Input is latency sensitive.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.Server.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.Server.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info("starting ssh server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	err = eg.Wait()
	logger.Info("server stopped", "high_score", h.scores.Best())
	return err
}

// handler runs one independent game per SSH session.
type handler struct {
	cfg    *config.Config
	tuning *config.Tuning
	logger *log.Logger
	scores *highScore
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Fatalln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		win := newWindowSize(pty.Window)
		go func() {
			for w := range winCh {
				win.set(w)
			}
		}()

		if err := h.play(sess, win, logger); err != nil {
			logger.Error("game error", "err", err)
		}
		next(sess)
	}
}

func (h *handler) play(sess ssh.Session, win *windowSize, logger *log.Logger) error {
	// Audio stays on the player's machine; the host has nothing to play it on.
	g, err := game.New(game.Options{
		Tuning:   h.tuning,
		Rand:     game.NewRand(0),
		Sound:    sfx.Nop{},
		Logger:   logger,
		MaxDelta: h.cfg.Display.MaxDelta,
	})
	if err != nil {
		return err
	}
	g.SetHighScore(h.scores.Best())

	r := render.NewTerminal(sess, render.Options{
		Size:      win.size,
		MaxWidth:  h.cfg.Display.MaxTermWidth,
		MaxHeight: h.cfg.Display.MaxTermHeight,
		Profile:   termenv.ANSI256,
	})

	in := input.StartStream(bufio.NewReader(sess))
	defer in.Stop()

	err = loop.Run(sess.Context(), loop.Options{
		Game:          g,
		Input:         in,
		Renderer:      r,
		FrameInterval: h.cfg.Display.FrameInterval(),
		IdleTimeout:   h.cfg.Server.IdleTimeout,
		Logger:        logger,
	})
	_ = r.Close()

	if h.scores.Record(g.HighScore()) {
		logger.Info("new server high score", "score", g.HighScore())
	}
	logger.Info("session ended", "score", g.Score(), "high_score", g.HighScore())

	switch {
	case errors.Is(err, loop.ErrIdle):
		wish.Println(sess, "Disconnected after inactivity.")
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

// highScore is the best score across all sessions since the server started.
type highScore struct {
	mu   sync.Mutex
	best int
}

func (s *highScore) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Record keeps score if it beats the current best and reports whether it did.
func (s *highScore) Record(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.best {
		return false
	}
	s.best = score
	return true
}

// windowSize holds the latest PTY dimensions, packed as width<<32 | height.
type windowSize struct{ packed atomic.Uint64 }

func newWindowSize(win ssh.Window) *windowSize {
	ws := &windowSize{}
	ws.set(win)
	return ws
}

func (ws *windowSize) set(win ssh.Window) {
	ws.packed.Store(uint64(uint32(win.Width))<<32 | uint64(uint32(win.Height)))
}

func (ws *windowSize) size() (int, int, error) {
	v := ws.packed.Load()
	return int(uint32(v >> 32)), int(uint32(v)), nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).size
