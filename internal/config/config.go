// Package config provides YAML/TOML configuration loading and difficulty
// presets for ringshot.
package config

import (
	"fmt"

	"github.com/vovakirdan/ringshot/internal/sim"
)

// RingshotConfig contains all tunables for a ringshot round.
type RingshotConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Capacity   CapacityConfig   `yaml:"capacity" toml:"capacity"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Shooting   ShootingConfig   `yaml:"shooting" toml:"shooting"`
	Enemies    EnemiesConfig    `yaml:"enemies" toml:"enemies"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
	Rules      sim.Rules        `yaml:"rules" toml:"rules"`
	Platform   PlatformConfig   `yaml:"platform" toml:"platform"`
}

// WorldConfig is the size of the play field in world units.
type WorldConfig struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// CapacityConfig bounds the entity collections.
type CapacityConfig struct {
	MaxEnemies int `yaml:"max_enemies" toml:"max_enemies"`
	MaxBullets int `yaml:"max_bullets" toml:"max_bullets"`
}

// PlayerConfig defines the player circle.
type PlayerConfig struct {
	Size  float64 `yaml:"size" toml:"size"`
	Speed float64 `yaml:"speed" toml:"speed"`
}

// ShootingConfig defines fire cadence and bullet properties.
type ShootingConfig struct {
	Delay       float64 `yaml:"delay" toml:"delay"` // seconds between shots
	BulletSpeed float64 `yaml:"bullet_speed" toml:"bullet_speed"`
	BulletSize  float64 `yaml:"bullet_size" toml:"bullet_size"`
	Pierce      int     `yaml:"pierce" toml:"pierce"`
}

// EnemiesConfig defines how enemies spawn, grow and move.
type EnemiesConfig struct {
	SpawnRate    float64 `yaml:"spawn_rate" toml:"spawn_rate"`
	SpawnRadius  float64 `yaml:"spawn_radius" toml:"spawn_radius"` // 0 = half the world width
	SizeFactor   float64 `yaml:"size_factor" toml:"size_factor"`
	SizeDivisor  float64 `yaml:"size_divisor" toml:"size_divisor"`
	BaseSpeed    float64 `yaml:"base_speed" toml:"base_speed"`
	SpeedDivisor float64 `yaml:"speed_divisor" toml:"speed_divisor"`
}

// DifficultyConfig defines the difficulty scalar and its drift.
type DifficultyConfig struct {
	GameTime float64 `yaml:"game_time" toml:"game_time"`
	Rate     float64 `yaml:"rate" toml:"rate"` // per second, 0 = constant
	Min      float64 `yaml:"min" toml:"min"`
	Max      float64 `yaml:"max" toml:"max"`
}

// PlatformConfig holds front-end settings.
type PlatformConfig struct {
	MaxFrameTime float64 `yaml:"max_frame_time" toml:"max_frame_time"` // clamp for measured deltas
}

// Validate reports the first setting that cannot produce a playable round.
func (c RingshotConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("config: world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	case c.Capacity.MaxEnemies <= 0:
		return fmt.Errorf("config: max_enemies must be positive, got %d", c.Capacity.MaxEnemies)
	case c.Capacity.MaxBullets <= 0:
		return fmt.Errorf("config: max_bullets must be positive, got %d", c.Capacity.MaxBullets)
	case c.Shooting.Delay <= 0:
		return fmt.Errorf("config: shooting delay must be positive, got %g", c.Shooting.Delay)
	case c.Difficulty.Min > c.Difficulty.Max:
		return fmt.Errorf("config: difficulty min %g exceeds max %g", c.Difficulty.Min, c.Difficulty.Max)
	case c.Platform.MaxFrameTime <= 0:
		return fmt.Errorf("config: max_frame_time must be positive, got %g", c.Platform.MaxFrameTime)
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Params converts the configuration into simulation parameters.
func (c RingshotConfig) Params() sim.Params {
	p := sim.DefaultParams(c.World.Width, c.World.Height, c.Capacity.MaxEnemies, c.Capacity.MaxBullets)

	p.PlayerSize = c.Player.Size
	p.PlayerSpeed = c.Player.Speed

	p.ShootDelay = c.Shooting.Delay
	p.BulletSpeed = c.Shooting.BulletSpeed
	p.BulletSize = c.Shooting.BulletSize
	p.BulletPierce = c.Shooting.Pierce

	p.GameTime = c.Difficulty.GameTime
	p.GameTimeRate = c.Difficulty.Rate
	p.GameTimeMin = c.Difficulty.Min
	p.GameTimeMax = c.Difficulty.Max

	p.SpawnRate = c.Enemies.SpawnRate
	if c.Enemies.SpawnRadius > 0 {
		p.SpawnRadius = c.Enemies.SpawnRadius
	}
	p.EnemySizeFactor = c.Enemies.SizeFactor
	p.EnemySizeDivisor = c.Enemies.SizeDivisor
	p.EnemyBaseSpeed = c.Enemies.BaseSpeed
	p.EnemySpeedDivisor = c.Enemies.SpeedDivisor

	p.Rules = c.Rules
	return p
}
