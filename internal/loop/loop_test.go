package loop_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/loop"
	"github.com/tomz197/novasiege/internal/loop/mocks"
)

// script replays a fixed list of actions, then idles.
type script struct {
	actions []input.Actions
	closed  bool
}

func (s *script) Poll() input.Actions {
	if len(s.actions) == 0 {
		return input.Actions{}
	}
	a := s.actions[0]
	s.actions = s.actions[1:]
	return a
}

func (s *script) Closed() bool { return s.closed && len(s.actions) == 0 }

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Options{Rand: rand.New(rand.NewPCG(1, 2))})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func TestRunStopsOnQuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)

	var states []game.State
	r.EXPECT().Render(gomock.Any()).DoAndReturn(func(s *game.Snapshot) error {
		states = append(states, s.State)
		return nil
	}).Times(4)

	src := &script{actions: []input.Actions{{Confirm: true}, {Fire: true}, {Quit: true}}}
	err := loop.Run(context.Background(), loop.Options{
		Game:          newGame(t),
		Input:         src,
		Renderer:      r,
		FrameInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []game.State{game.StateMenu, game.StatePlaying, game.StatePlaying, game.StatePlaying}
	for i, s := range want {
		if states[i] != s {
			t.Errorf("frame %d state = %s, want %s", i, states[i], s)
		}
	}
}

func TestRunReturnsRenderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	broken := errors.New("broken pipe")

	gomock.InOrder(
		r.EXPECT().Render(gomock.Any()).Return(nil),
		r.EXPECT().Render(gomock.Any()).Return(broken),
	)

	err := loop.Run(context.Background(), loop.Options{
		Game:          newGame(t),
		Input:         &script{},
		Renderer:      r,
		FrameInterval: time.Millisecond,
	})
	if !errors.Is(err, broken) {
		t.Fatalf("Run error = %v, want %v", err, broken)
	}
}

func TestRunIdleTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	r.EXPECT().Render(gomock.Any()).Return(nil).AnyTimes()

	err := loop.Run(context.Background(), loop.Options{
		Game:          newGame(t),
		Input:         &script{},
		Renderer:      r,
		FrameInterval: time.Millisecond,
		IdleTimeout:   20 * time.Millisecond,
	})
	if !errors.Is(err, loop.ErrIdle) {
		t.Fatalf("Run error = %v, want ErrIdle", err)
	}
}

func TestRunStopsWhenInputCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	r.EXPECT().Render(gomock.Any()).Return(nil).Times(3)

	src := &script{actions: []input.Actions{{Confirm: true}, {Left: true}}, closed: true}
	err := loop.Run(context.Background(), loop.Options{
		Game:          newGame(t),
		Input:         src,
		Renderer:      r,
		FrameInterval: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRenderer(ctrl)
	in := mocks.NewMockInputSource(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	r.EXPECT().Render(gomock.Any()).DoAndReturn(func(*game.Snapshot) error {
		frames++
		if frames == 2 {
			cancel()
		}
		return nil
	}).Times(2)
	in.EXPECT().Poll().Return(input.Actions{Up: true})
	in.EXPECT().Closed().Return(false)

	err := loop.Run(ctx, loop.Options{
		Game:          newGame(t),
		Input:         in,
		Renderer:      r,
		FrameInterval: time.Hour,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunRequiresCollaborators(t *testing.T) {
	if err := loop.Run(context.Background(), loop.Options{}); err == nil {
		t.Fatal("expected error for empty options")
	}
}
