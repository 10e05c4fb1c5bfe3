package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/novasiege/internal/input"
	"github.com/tomz197/novasiege/internal/object"
	"github.com/tomz197/novasiege/internal/sfx"
)

const frame = time.Second / 60

func newTestGame(t *testing.T, sink sfx.Sink) *Game {
	t.Helper()
	g, err := New(Options{
		Rand:  rand.New(rand.NewPCG(7, 11)),
		Sound: sink,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

// playingGame returns a game with a fresh session and no pending spawns.
func playingGame(t *testing.T, sink sfx.Sink) *Game {
	t.Helper()
	g := newTestGame(t, sink)
	g.start()
	return g
}

func TestNewStartsInMenu(t *testing.T) {
	g := newTestGame(t, nil)
	if g.State() != StateMenu {
		t.Fatalf("State = %s, want menu", g.State())
	}
	s := g.Snapshot()
	if s == nil || s.State != StateMenu {
		t.Fatalf("initial snapshot = %+v", s)
	}
	if len(s.Stars) != 120 {
		t.Errorf("stars = %d, want 120", len(s.Stars))
	}
}

func TestConfirmStartsExactlyOnce(t *testing.T) {
	g := newTestGame(t, nil)

	g.Tick(frame, input.Actions{Confirm: true})
	if g.State() != StatePlaying {
		t.Fatalf("State = %s, want playing", g.State())
	}
	w := g.world
	w.Score = 300

	g.Tick(frame, input.Actions{Confirm: true})
	if g.State() != StatePlaying {
		t.Fatalf("State = %s, want playing", g.State())
	}
	if g.world != w || g.Score() != 300 {
		t.Error("confirm while playing reset the session")
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, nil)
	g.Tick(frame, input.Actions{Confirm: true})

	g.Tick(frame, input.Actions{Pause: true})
	if g.State() != StatePaused {
		t.Fatalf("State = %s, want paused", g.State())
	}

	p := g.world.Player
	x, cd := p.X, p.PulseCooldown
	p.PulseCooldown = 3
	for range 30 {
		g.Tick(frame, input.Actions{Right: true, Fire: true})
	}
	if p.X != x || p.PulseCooldown != 3 || len(g.world.Bullets) != 0 {
		t.Errorf("simulation advanced while paused: x %v->%v cooldown %v->%v", x, p.X, cd, p.PulseCooldown)
	}

	g.Tick(frame, input.Actions{Pause: true})
	if g.State() != StatePlaying {
		t.Fatalf("State = %s, want playing", g.State())
	}
}

func TestIrrelevantActionsAreNoOps(t *testing.T) {
	g := newTestGame(t, nil)
	g.Tick(frame, input.Actions{Pause: true})
	if g.State() != StateMenu {
		t.Errorf("pause in menu changed state to %s", g.State())
	}

	g.Tick(frame, input.Actions{Confirm: true})
	g.Tick(frame, input.Actions{Pause: true})
	w := g.world
	g.Tick(frame, input.Actions{Confirm: true})
	if g.State() != StatePaused || g.world != w {
		t.Errorf("confirm while paused: state %s", g.State())
	}
}

func TestQuitFromAnyState(t *testing.T) {
	for _, st := range []State{StateMenu, StatePlaying, StatePaused, StateGameOver} {
		t.Run(st.String(), func(t *testing.T) {
			g := newTestGame(t, nil)
			g.start()
			g.state = st

			g.Tick(frame, input.Actions{Quit: true, Confirm: true})
			if !g.Quitting() {
				t.Fatal("quit not recorded")
			}
			if g.State() != st {
				t.Errorf("quit tick changed state to %s", g.State())
			}
		})
	}
}

func TestSanitizeDelta(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{-5 * time.Millisecond, 0},
		{0, 0},
		{10 * time.Millisecond, 10 * time.Millisecond},
		{50 * time.Millisecond, 50 * time.Millisecond},
		{time.Second, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := SanitizeDelta(tt.in, DefaultMaxDelta); got != tt.want {
			t.Errorf("SanitizeDelta(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLongFrameIsClamped(t *testing.T) {
	g := playingGame(t, nil)
	x := g.world.Player.X

	g.Tick(5*time.Second, input.Actions{Right: true})
	if moved := g.world.Player.X - x; moved > 14+1e-9 {
		t.Errorf("moved %v in one tick, want at most 14", moved)
	}

	g.Tick(-time.Second, input.Actions{Right: true})
	if g.world.Player.X-x > 14+1e-9 {
		t.Error("negative delta moved the player")
	}
}

func TestEnemiesSpawnWhilePlaying(t *testing.T) {
	g := playingGame(t, nil)
	for range 120 {
		g.Tick(frame, input.Actions{})
	}
	if len(g.world.Enemies) == 0 {
		t.Fatal("no enemy spawned after two seconds")
	}
	for _, e := range g.world.Enemies {
		if e.X < 16 || e.X > 464 {
			t.Errorf("enemy at x=%v outside the field", e.X)
		}
	}
	if g.Snapshot().Wave != 1 {
		t.Errorf("Wave = %d, want 1", g.Snapshot().Wave)
	}
}

func TestPlayerDeathAndHighScore(t *testing.T) {
	g := playingGame(t, nil)
	g.SetHighScore(1000)

	kill := func(score int) {
		w := g.world
		w.Score = score
		p := w.Player
		p.Health = 5
		b := object.NewBullet(p.X, p.Y, 1.5707963267948966, object.TeamEnemy,
			object.NewBulletParams(g.tuning.Bullets.Enemy, g.tuning.Bullets))
		w.Bullets = append(w.Bullets, b)
		g.Tick(frame, input.Actions{})
	}

	kill(1234)
	if g.State() != StateGameOver {
		t.Fatalf("State = %s, want game over", g.State())
	}
	if g.HighScore() != 1234 || !g.Snapshot().NewRecord {
		t.Errorf("HighScore = %d NewRecord = %v", g.HighScore(), g.Snapshot().NewRecord)
	}
	if g.Snapshot().Player.Alive() {
		t.Error("snapshot shows a live player after death")
	}

	particles := len(g.world.Particles.Particles())
	g.Tick(frame, input.Actions{})
	if particles == 0 || g.State() != StateGameOver {
		t.Error("death burst missing")
	}

	g.Tick(frame, input.Actions{Confirm: true})
	if g.State() != StatePlaying || g.Score() != 0 {
		t.Fatalf("restart: state %s score %d", g.State(), g.Score())
	}

	kill(200)
	if g.HighScore() != 1234 || g.Snapshot().NewRecord {
		t.Errorf("HighScore = %d NewRecord = %v", g.HighScore(), g.Snapshot().NewRecord)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := playingGame(t, nil)
	g.world.Enemies = append(g.world.Enemies, g.kinds.Spawn(object.KindTank, 240, 100, g.rng))
	g.Tick(frame, input.Actions{})

	before := g.Snapshot()
	x := before.Player.X
	ey := before.Enemies[0].Y

	for range 10 {
		g.Tick(frame, input.Actions{Right: true})
	}
	if before.Player.X != x || before.Enemies[0].Y != ey {
		t.Error("published snapshot changed after later ticks")
	}
	if g.Snapshot() == before {
		t.Error("no new snapshot published")
	}

	before.Enemies[0].HP = 1
	if g.world.Enemies[0].HP == 1 {
		t.Error("snapshot shares enemies with the world")
	}
}

func TestPruneKeepsOrder(t *testing.T) {
	g := playingGame(t, nil)
	w := g.world
	var es []*object.Enemy
	for i := range 4 {
		es = append(es, g.kinds.Spawn(object.KindScout, float64(50+i*100), 100, g.rng))
	}
	es[0].Destroy()
	es[2].Destroy()
	w.Enemies = append(w.Enemies[:0], es...)

	w.prune()
	if len(w.Enemies) != 2 || w.Enemies[0] != es[1] || w.Enemies[1] != es[3] {
		t.Errorf("prune result = %v", w.Enemies)
	}
}

func TestSetHighScoreRejectsNegative(t *testing.T) {
	g := newTestGame(t, nil)
	g.SetHighScore(-5)
	if g.HighScore() != 0 {
		t.Errorf("HighScore = %d, want 0", g.HighScore())
	}
	g.SetHighScore(900)
	if g.Snapshot().HighScore != 900 {
		t.Errorf("snapshot HighScore = %d", g.Snapshot().HighScore)
	}
}

func TestNewRandIsDeterministicForSeed(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for range 10 {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different streams")
		}
	}
}
