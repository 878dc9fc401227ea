package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ringshot/internal/sim"
)

//go:embed defaults/ringshot.yaml
var defaultRingshotYAML []byte

// DefaultRingshotConfig returns the default ringshot configuration.
func DefaultRingshotConfig() RingshotConfig {
	return RingshotConfig{
		World: WorldConfig{
			Width:  800,
			Height: 480,
		},
		Capacity: CapacityConfig{
			MaxEnemies: 100,
			MaxBullets: 100,
		},
		Player: PlayerConfig{
			Size:  30,
			Speed: 1000,
		},
		Shooting: ShootingConfig{
			Delay:       0.3,
			BulletSpeed: 30,
			BulletSize:  5,
			Pierce:      40,
		},
		Enemies: EnemiesConfig{
			SpawnRate:    0.1,
			SizeFactor:   8,
			SizeDivisor:  20,
			BaseSpeed:    40,
			SpeedDivisor: 10,
		},
		Difficulty: DifficultyConfig{
			GameTime: 20,
			Min:      1,
			Max:      100,
		},
		Rules: sim.ArcadeRules(),
		Platform: PlatformConfig{
			MaxFrameTime: 0.25,
		},
	}
}

// DefaultYAML returns the embedded default YAML, comments included.
func DefaultYAML() []byte {
	return defaultRingshotYAML
}

// EmbeddedDefault decodes DefaultYAML over the hardcoded defaults.
func EmbeddedDefault() RingshotConfig {
	cfg := DefaultRingshotConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		return DefaultRingshotConfig()
	}
	return cfg
}
