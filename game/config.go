package game

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tuning of a round. The zero value is not usable; start from
// DefaultConfig and override fields.
type Config struct {
	Arena     ArenaConfig     `yaml:"arena"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Objective ObjectiveConfig `yaml:"objective"`
	Player    PlayerConfig    `yaml:"player"`
	Flyer     FlyerConfig     `yaml:"flyer"`
	Bullets   BulletConfig    `yaml:"bullets"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Spawner   SpawnerConfig   `yaml:"spawner"`
	Log       LogConfig       `yaml:"log"`
}

type ArenaConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type PhysicsConfig struct {
	Gravity     float32 `yaml:"gravity"`
	WalkForce   float32 `yaml:"walk_force"`
	JumpImpulse float32 `yaml:"jump_impulse"`
	Drag        float32 `yaml:"drag"`
	// MinDelta is the lower bound applied to every frame's delta time, in seconds.
	MinDelta float64 `yaml:"min_delta"`
}

type ObjectiveConfig struct {
	Width       float32 `yaml:"width"`
	Height      float32 `yaml:"height"`
	FloorOffset float32 `yaml:"floor_offset"`
}

type PlayerConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	StartX float32 `yaml:"start_x"`
	// StartDrop is how far above the arena's bottom edge the player starts.
	StartDrop float32 `yaml:"start_drop"`
}

type FlyerConfig struct {
	Width         float32 `yaml:"width"`
	Height        float32 `yaml:"height"`
	HomingForce   float32 `yaml:"homing_force"`
	ArrivalRadius float32 `yaml:"arrival_radius"`
	LandedRadius  float32 `yaml:"landed_radius"`
}

type BulletConfig struct {
	Pool         int           `yaml:"pool"`
	Size         float32       `yaml:"size"`
	Speed        float32       `yaml:"speed"`
	Cooldown     time.Duration `yaml:"cooldown"`
	HitRadius    float32       `yaml:"hit_radius"`
	BoundsMargin float32       `yaml:"bounds_margin"`
	Park         Position      `yaml:"park"`
	// Volley fires every ready bullet on a single accepted fire command.
	Volley bool `yaml:"volley"`
}

type ScoringConfig struct {
	KillReward       int           `yaml:"kill_reward"`
	SurvivalReward   int           `yaml:"survival_reward"`
	SurvivalInterval time.Duration `yaml:"survival_interval"`
}

type SpawnerConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Interval     time.Duration `yaml:"interval"`
	InitialCount int           `yaml:"initial_count"`
	MaxCount     int           `yaml:"max_count"`
	Seed         uint64        `yaml:"seed"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the standard tuning for a 1024x768 arena.
func DefaultConfig() Config {
	return Config{
		Arena: ArenaConfig{Width: 1024, Height: 768},
		Physics: PhysicsConfig{
			Gravity:     0.5,
			WalkForce:   0.8,
			JumpImpulse: 50.5,
			Drag:        0.8,
			MinDelta:    1.0 / 60.0,
		},
		Objective: ObjectiveConfig{Width: 5, Height: 15, FloorOffset: 25},
		Player:    PlayerConfig{Width: 15, Height: 50, StartX: 100, StartDrop: 515},
		Flyer: FlyerConfig{
			Width:         25,
			Height:        10,
			HomingForce:   0.05,
			ArrivalRadius: 25,
			LandedRadius:  2,
		},
		Bullets: BulletConfig{
			Pool:         3,
			Size:         5,
			Speed:        150,
			Cooldown:     100 * time.Millisecond,
			HitRadius:    25,
			BoundsMargin: 10,
			Park:         Position{X: -50, Y: -50},
		},
		Scoring: ScoringConfig{
			KillReward:       10,
			SurvivalReward:   1,
			SurvivalInterval: 5 * time.Second,
		},
		Spawner: SpawnerConfig{
			Enabled:      true,
			Interval:     3 * time.Second,
			InitialCount: 1,
			MaxCount:     50,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate returns an error describing the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return errors.New("arena dimensions must be positive")
	case c.Physics.MinDelta <= 0:
		return errors.New("physics.min_delta must be positive")
	case c.Bullets.Pool < 0:
		return errors.New("bullets.pool must not be negative")
	case c.Bullets.Speed <= 0:
		return errors.New("bullets.speed must be positive")
	case c.Bullets.Cooldown < 0:
		return errors.New("bullets.cooldown must not be negative")
	case c.Scoring.KillReward < 0 || c.Scoring.SurvivalReward < 0:
		return errors.New("scoring rewards must not be negative")
	case c.Scoring.SurvivalInterval <= 0:
		return errors.New("scoring.survival_interval must be positive")
	case c.Spawner.Enabled && c.Spawner.Interval <= 0:
		return errors.New("spawner.interval must be positive")
	case c.Spawner.InitialCount < 0 || c.Spawner.MaxCount < c.Spawner.InitialCount:
		return errors.New("spawner counts must satisfy 0 <= initial_count <= max_count")
	}
	return nil
}

// DecodeConfig reads YAML on top of DefaultConfig; keys that are absent keep their defaults.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return DecodeConfig(f)
}
