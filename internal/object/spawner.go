package object

import (
	"math/rand/v2"

	"github.com/tomz197/novasiege/internal/config"
	"github.com/tomz197/novasiege/internal/physics"
)

// EnemySpawner paces enemy arrivals. Spawns speed up and tougher kinds
// appear as the score rises.
type EnemySpawner struct {
	cfg      config.SpawnerTuning
	timer    float64
	interval float64
	wave     int
}

// NewEnemySpawner creates a spawner for a fresh session.
func NewEnemySpawner(cfg config.SpawnerTuning) *EnemySpawner {
	return &EnemySpawner{
		cfg:      cfg,
		interval: cfg.BaseInterval,
		wave:     1,
	}
}

// Difficulty maps score onto [0, 1].
func (s *EnemySpawner) Difficulty(score int) float64 {
	return physics.Clamp(float64(score)/s.cfg.DifficultyScore, 0, 1)
}

// IntervalFor is the spawn interval at the given score.
func (s *EnemySpawner) IntervalFor(score int) float64 {
	return physics.Lerp(s.cfg.BaseInterval, s.cfg.FloorInterval, s.Difficulty(score))
}

// WaveFor is the wave number at the given score.
func (s *EnemySpawner) WaveFor(score int) int {
	return 1 + max(score, 0)/s.cfg.WaveScore
}

// Update accumulates time and returns at most one kind to spawn.
func (s *EnemySpawner) Update(dt float64, score int, rng *rand.Rand) (Kind, bool) {
	d := s.Difficulty(score)
	s.interval = s.IntervalFor(score)
	s.wave = s.WaveFor(score)

	s.timer += dt
	if s.timer < s.interval {
		return 0, false
	}
	s.timer = 0
	return s.PickKind(d, rng.Float64()), true
}

// PickKind chooses a kind from a uniform draw r in [0, 1).
func (s *EnemySpawner) PickKind(difficulty, r float64) Kind {
	tank := difficulty * s.cfg.TankWeight
	hunter := s.cfg.HunterBase + difficulty*s.cfg.HunterWeight
	switch {
	case r < tank:
		return KindTank
	case r < tank+hunter:
		return KindHunter
	}
	return KindScout
}

// Interval is the interval computed on the last update.
func (s *EnemySpawner) Interval() float64 { return s.interval }

// Wave is the wave number computed on the last update.
func (s *EnemySpawner) Wave() int { return s.wave }
