package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tuning.yaml
var defaultTuning []byte

// ErrInvalidTuning is returned when tuning values are out of range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Movement tags understood by the enemy controller.
const (
	MovementStraight = "straight"
	MovementSine     = "sine"
	MovementTrack    = "track"
)

// EnemyKindNames lists the kinds every tuning file must define.
var EnemyKindNames = []string{"scout", "hunter", "tank"}

// Tuning holds every gameplay constant.
type Tuning struct {
	Field    FieldTuning   `yaml:"field"`
	Player   PlayerTuning  `yaml:"player"`
	Bullets  BulletsTuning `yaml:"bullets"`
	PowerUps PowerUpTuning `yaml:"powerUps"`
	Enemies  EnemyTuning   `yaml:"enemies"`
	Spawner  SpawnerTuning `yaml:"spawner"`
	Scoring  ScoringTuning `yaml:"scoring"`
	Pulse    PulseTuning   `yaml:"pulse"`
}

type FieldTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerTuning struct {
	Speed             float64 `yaml:"speed"`
	Health            int     `yaml:"health"`
	MaxShield         int     `yaml:"maxShield"`
	HalfWidth         float64 `yaml:"halfWidth"`
	HalfHeight        float64 `yaml:"halfHeight"`
	HitboxInset       float64 `yaml:"hitboxInset"`
	SpawnOffsetY      float64 `yaml:"spawnOffsetY"` // distance from the bottom edge
	ShootRate         float64 `yaml:"shootRate"`    // shots per second
	RapidFireFactor   float64 `yaml:"rapidFireFactor"`
	TripleSpreadDeg   float64 `yaml:"tripleSpreadDeg"`
	TripleOffsetX     float64 `yaml:"tripleOffsetX"`
	Invincibility     float64 `yaml:"invincibility"`
	HitFlash          float64 `yaml:"hitFlash"`
	PulseCooldown     float64 `yaml:"pulseCooldown"`
	HealthPickup      int     `yaml:"healthPickup"`
	RapidFireDuration float64 `yaml:"rapidFireDuration"`
	TripleDuration    float64 `yaml:"tripleDuration"`
}

type BulletTuning struct {
	Speed  float64 `yaml:"speed"`
	Damage int     `yaml:"damage"`
	Radius float64 `yaml:"radius"`
}

type BulletsTuning struct {
	CullMargin  float64      `yaml:"cullMargin"`
	TrailLength int          `yaml:"trailLength"`
	Player      BulletTuning `yaml:"player"`
	Enemy       BulletTuning `yaml:"enemy"`
}

type PowerUpTuning struct {
	FallSpeed  float64 `yaml:"fallSpeed"`
	Radius     float64 `yaml:"radius"`
	DropChance float64 `yaml:"dropChance"`
	CullMargin float64 `yaml:"cullMargin"`
}

// EnemyKindTuning is one row of the enemy kind table.
type EnemyKindTuning struct {
	HP        int     `yaml:"hp"`
	Speed     float64 `yaml:"speed"`
	Size      float64 `yaml:"size"` // half extent of the square hitbox
	Score     int     `yaml:"score"`
	FireRate  float64 `yaml:"fireRate"` // shots per second
	Movement  string  `yaml:"movement"`
	Shots     int     `yaml:"shots"`
	SpreadDeg float64 `yaml:"spreadDeg"`
}

type EnemyTuning struct {
	SpawnY        float64                    `yaml:"spawnY"`
	SpawnMarginX  float64                    `yaml:"spawnMarginX"`
	EscapeMargin  float64                    `yaml:"escapeMargin"`
	HitFlash      float64                    `yaml:"hitFlash"`
	ContactDamage int                        `yaml:"contactDamage"`
	TrackGain     float64                    `yaml:"trackGain"`
	TrackDescent  float64                    `yaml:"trackDescent"`
	SineAmpMin    float64                    `yaml:"sineAmpMin"`
	SineAmpMax    float64                    `yaml:"sineAmpMax"`
	SineFreqMin   float64                    `yaml:"sineFreqMin"`
	SineFreqMax   float64                    `yaml:"sineFreqMax"`
	Kinds         map[string]EnemyKindTuning `yaml:"kinds"`
}

type SpawnerTuning struct {
	BaseInterval    float64 `yaml:"baseInterval"`
	FloorInterval   float64 `yaml:"floorInterval"`
	DifficultyScore float64 `yaml:"difficultyScore"`
	WaveScore       int     `yaml:"waveScore"`
	TankWeight      float64 `yaml:"tankWeight"`
	HunterBase      float64 `yaml:"hunterBase"`
	HunterWeight    float64 `yaml:"hunterWeight"`
}

type ScoringTuning struct {
	ComboWindow   float64 `yaml:"comboWindow"`
	ChainStep     int     `yaml:"chainStep"`
	MultiplierCap int     `yaml:"multiplierCap"`
}

type PulseTuning struct {
	Radius float64 `yaml:"radius"`
	Damage int     `yaml:"damage"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() *Tuning {
	t, err := ParseTuning(defaultTuning)
	if err != nil {
		panic(fmt.Sprintf("built-in tuning: %v", err))
	}
	return t
}

// LoadTuning reads a YAML tuning file. An empty path returns DefaultTuning.
func LoadTuning(path string) (*Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// ParseTuning decodes YAML over the built-in values and validates the result,
// so a file only needs the keys it changes. Rows under enemies.kinds are the
// exception: a listed kind replaces the built-in row as a whole, so it must
// give every field.
func ParseTuning(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(defaultTuning, &t); err != nil {
		return nil, fmt.Errorf("parse built-in tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that every value keeps the simulation well defined.
func (t *Tuning) Validate() error {
	if t.Field.Width <= 0 || t.Field.Height <= 0 {
		return fmt.Errorf("%w: field dimensions must be positive", ErrInvalidTuning)
	}

	p := t.Player
	if p.Speed <= 0 || p.Health <= 0 || p.MaxShield < 0 {
		return fmt.Errorf("%w: player speed and health must be positive", ErrInvalidTuning)
	}
	if p.HalfWidth <= p.HitboxInset || p.HalfHeight <= p.HitboxInset {
		return fmt.Errorf("%w: player hitbox inset exceeds half extents", ErrInvalidTuning)
	}
	if 2*p.HalfWidth >= t.Field.Width || 2*p.HalfHeight >= t.Field.Height {
		return fmt.Errorf("%w: player does not fit in the field", ErrInvalidTuning)
	}
	if p.ShootRate <= 0 || p.RapidFireFactor < 1 {
		return fmt.Errorf("%w: player fire rate must be positive", ErrInvalidTuning)
	}
	if p.PulseCooldown <= 0 {
		return fmt.Errorf("%w: pulse cooldown must be positive", ErrInvalidTuning)
	}

	if t.Bullets.Player.Speed <= 0 || t.Bullets.Enemy.Speed <= 0 {
		return fmt.Errorf("%w: bullet speeds must be positive", ErrInvalidTuning)
	}
	if t.Bullets.Player.Damage <= 0 || t.Bullets.Enemy.Damage <= 0 {
		return fmt.Errorf("%w: bullet damage must be positive", ErrInvalidTuning)
	}
	if t.Bullets.TrailLength < 0 {
		return fmt.Errorf("%w: bullet trail length must not be negative", ErrInvalidTuning)
	}

	if t.PowerUps.DropChance < 0 || t.PowerUps.DropChance > 1 {
		return fmt.Errorf("%w: power-up drop chance must be within [0, 1]", ErrInvalidTuning)
	}

	e := t.Enemies
	if e.SineAmpMin > e.SineAmpMax || e.SineFreqMin > e.SineFreqMax {
		return fmt.Errorf("%w: sine ranges are inverted", ErrInvalidTuning)
	}
	if e.ContactDamage <= 0 {
		return fmt.Errorf("%w: contact damage must be positive", ErrInvalidTuning)
	}
	if 2*e.SpawnMarginX > t.Field.Width {
		return fmt.Errorf("%w: spawn margin exceeds field width", ErrInvalidTuning)
	}
	for _, name := range EnemyKindNames {
		k, ok := e.Kinds[name]
		if !ok {
			return fmt.Errorf("%w: enemy kind %q missing", ErrInvalidTuning, name)
		}
		if k.HP <= 0 || k.Speed <= 0 || k.Size <= 0 || k.FireRate <= 0 || k.Shots <= 0 {
			return fmt.Errorf("%w: enemy kind %q has non-positive stats", ErrInvalidTuning, name)
		}
		switch k.Movement {
		case MovementStraight, MovementSine, MovementTrack:
		default:
			return fmt.Errorf("%w: enemy kind %q has unknown movement %q", ErrInvalidTuning, name, k.Movement)
		}
	}

	s := t.Spawner
	if s.BaseInterval <= 0 || s.FloorInterval <= 0 || s.FloorInterval > s.BaseInterval {
		return fmt.Errorf("%w: spawn intervals must satisfy 0 < floor <= base", ErrInvalidTuning)
	}
	if s.DifficultyScore <= 0 || s.WaveScore <= 0 {
		return fmt.Errorf("%w: spawner score scales must be positive", ErrInvalidTuning)
	}

	if t.Scoring.ChainStep <= 0 || t.Scoring.MultiplierCap < 1 || t.Scoring.ComboWindow <= 0 {
		return fmt.Errorf("%w: scoring values must be positive", ErrInvalidTuning)
	}
	if t.Pulse.Radius <= 0 || t.Pulse.Damage <= 0 {
		return fmt.Errorf("%w: pulse radius and damage must be positive", ErrInvalidTuning)
	}
	return nil
}

// MaxEnemySize returns the largest half extent in the kind table.
func (t *Tuning) MaxEnemySize() float64 {
	var m float64
	for _, k := range t.Enemies.Kinds {
		m = max(m, k.Size)
	}
	return m
}
