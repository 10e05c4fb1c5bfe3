package object

import (
	"fmt"
	"math/rand/v2"

	"github.com/tomz197/novasiege/internal/config"
)

// Kind identifies an enemy row in the kind table.
type Kind uint8

const (
	KindScout Kind = iota
	KindHunter
	KindTank
	kindCount
)

var kindNames = [kindCount]string{"scout", "hunter", "tank"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Movement is the closed set of enemy movement rules.
type Movement uint8

const (
	MoveStraight Movement = iota
	MoveSine
	MoveTrack
)

func parseMovement(s string) (Movement, error) {
	switch s {
	case config.MovementStraight:
		return MoveStraight, nil
	case config.MovementSine:
		return MoveSine, nil
	case config.MovementTrack:
		return MoveTrack, nil
	}
	return 0, fmt.Errorf("%w: movement %q", config.ErrInvalidTuning, s)
}

// KindStats is the per-kind data an enemy is built from.
type KindStats struct {
	HP        int
	Speed     float64
	Size      float64
	Score     int
	FireRate  float64
	Movement  Movement
	Shots     int
	SpreadDeg float64
}

// EnemyParams are the values shared by every enemy kind.
type EnemyParams struct {
	HitFlash     float64
	EscapeMargin float64
	TrackGain    float64
	TrackDescent float64
	SineAmpMin   float64
	SineAmpMax   float64
	SineFreqMin  float64
	SineFreqMax  float64
	Bullet       BulletParams
}

// KindTable maps every Kind to its stats.
type KindTable struct {
	stats  [kindCount]KindStats
	params EnemyParams
}

// NewKindTable builds the table from tuning.
func NewKindTable(t *config.Tuning) (*KindTable, error) {
	kt := &KindTable{
		params: EnemyParams{
			HitFlash:     t.Enemies.HitFlash,
			EscapeMargin: t.Enemies.EscapeMargin,
			TrackGain:    t.Enemies.TrackGain,
			TrackDescent: t.Enemies.TrackDescent,
			SineAmpMin:   t.Enemies.SineAmpMin,
			SineAmpMax:   t.Enemies.SineAmpMax,
			SineFreqMin:  t.Enemies.SineFreqMin,
			SineFreqMax:  t.Enemies.SineFreqMax,
			Bullet:       NewBulletParams(t.Bullets.Enemy, t.Bullets),
		},
	}
	for k := range kindCount {
		row, ok := t.Enemies.Kinds[k.String()]
		if !ok {
			return nil, fmt.Errorf("%w: enemy kind %q missing", config.ErrInvalidTuning, k)
		}
		mv, err := parseMovement(row.Movement)
		if err != nil {
			return nil, fmt.Errorf("enemy kind %q: %w", k, err)
		}
		kt.stats[k] = KindStats{
			HP:        row.HP,
			Speed:     row.Speed,
			Size:      row.Size,
			Score:     row.Score,
			FireRate:  row.FireRate,
			Movement:  mv,
			Shots:     row.Shots,
			SpreadDeg: row.SpreadDeg,
		}
	}
	return kt, nil
}

// Spawn builds a new enemy of kind k at (x, y).
func (kt *KindTable) Spawn(k Kind, x, y float64, rng *rand.Rand) *Enemy {
	return newEnemy(k, x, y, kt.stats[k], kt.params, rng)
}
