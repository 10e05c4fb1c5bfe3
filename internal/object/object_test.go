package object

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/input"
)

var testField = Field{Width: 480, Height: 720}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newCtx(dt time.Duration, in input.Actions) UpdateContext {
	return UpdateContext{
		Delta: dt,
		Input: in,
		Field: testField,
	}
}

func newTestPlayer() *Player {
	tn := config.DefaultTuning()
	return NewPlayer(tn.Player, NewBulletParams(tn.Bullets.Player, tn.Bullets), testField)
}

func newTestTable(t testing.TB) *KindTable {
	t.Helper()
	kt, err := NewKindTable(config.DefaultTuning())
	if err != nil {
		t.Fatalf("NewKindTable: %v", err)
	}
	return kt
}

func TestFieldOutside(t *testing.T) {
	if testField.Outside(-20, 0, 20) {
		t.Error("point on the margin should be inside")
	}
	if !testField.Outside(-20.5, 0, 20) {
		t.Error("point past the margin should be outside")
	}
	if got := testField.ClampX(500, 16); got != 464 {
		t.Errorf("ClampX = %v, want 464", got)
	}
}

func TestShouldRenderBlink(t *testing.T) {
	if !ShouldRenderBlink(0, 0.05, 10) {
		t.Error("no invincibility should always render")
	}
	if ShouldRenderBlink(1, 0.05, 10) == ShouldRenderBlink(1, 0.15, 10) {
		t.Error("blink phase should alternate every 0.1s")
	}
}

func TestKindTableRejectsUnknownMovement(t *testing.T) {
	tn := config.DefaultTuning()
	scout := tn.Enemies.Kinds["scout"]
	scout.Movement = "spiral"
	tn.Enemies.Kinds["scout"] = scout

	if _, err := NewKindTable(tn); err == nil {
		t.Fatal("expected error for unknown movement")
	}
}

func TestKindString(t *testing.T) {
	if KindHunter.String() != "hunter" {
		t.Errorf("KindHunter = %q", KindHunter)
	}
	if Kind(9).String() != "kind(9)" {
		t.Errorf("unknown kind = %q", Kind(9))
	}
}
