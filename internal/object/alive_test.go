package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/input"
	"pgregory.net/rapid"
)

func TestDeadEntitiesStayInert(t *testing.T) {
	kt := newTestTable(t)
	tn := config.DefaultTuning()

	rapid.Check(t, func(t *rapid.T) {
		ticks := rapid.IntRange(1, 120).Draw(t, "ticks")
		dt := time.Duration(rapid.IntRange(1, 50).Draw(t, "dtMillis")) * time.Millisecond
		kind := Kind(rapid.IntRange(0, int(kindCount)-1).Draw(t, "kind"))
		x := rapid.Float64Range(40, 440).Draw(t, "x")
		in := input.Actions{
			Left:  rapid.Bool().Draw(t, "left"),
			Up:    rapid.Bool().Draw(t, "up"),
			Fire:  rapid.Bool().Draw(t, "fire"),
			Pulse: rapid.Bool().Draw(t, "pulse"),
		}

		e := kt.Spawn(kind, x, 100, newRand())
		if rapid.Bool().Draw(t, "killed") {
			if !e.TakeDamage(e.HP) {
				t.Fatal("lethal damage did not kill")
			}
		} else {
			e.Destroy()
		}

		b := NewBullet(x, 300, -math.Pi/2, TeamPlayer, NewBulletParams(tn.Bullets.Player, tn.Bullets))
		b.Deactivate()
		pu := NewPowerUp(x, 200, PowerUpShield, tn.PowerUps)
		pu.Deactivate()
		p := newTestPlayer()
		p.TakeDamage(p.Health)
		if p.Alive() {
			t.Fatal("lethal damage left the player alive")
		}

		wantEnemy, wantBullet, wantPowerUp, wantPlayer := *e, *b, *pu, *p

		ctx := enemyCtx(dt, Point{X: rapid.Float64Range(0, 480).Draw(t, "targetX"), Y: 600})
		ctx.Input = in
		for range ticks {
			if shots := e.Update(ctx); len(shots) != 0 {
				t.Fatalf("dead enemy fired %d bullets", len(shots))
			}
			if e.TakeDamage(10) {
				t.Fatal("dead enemy killed again")
			}
			b.Update(dt.Seconds(), testField)
			pu.Update(dt.Seconds(), testField)
			if shots, pulse := p.Update(ctx); len(shots) != 0 || pulse {
				t.Fatalf("dead player acted: %d bullets, pulse %v", len(shots), pulse)
			}
			p.TakeDamage(10)
		}

		if e.Alive() || b.Alive() || pu.Alive() || p.Alive() {
			t.Fatal("an entity came back to life")
		}
		if *e != wantEnemy {
			t.Errorf("dead enemy changed: %+v -> %+v", wantEnemy, *e)
		}
		if *b != wantBullet {
			t.Errorf("dead bullet changed: %+v -> %+v", wantBullet, *b)
		}
		if *pu != wantPowerUp {
			t.Errorf("dead power-up changed: %+v -> %+v", wantPowerUp, *pu)
		}
		if *p != wantPlayer {
			t.Errorf("dead player changed: %+v -> %+v", wantPlayer, *p)
		}
	})
}
