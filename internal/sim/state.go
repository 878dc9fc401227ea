// Package sim implements the per-frame simulation of ringshot: player movement,
// timed shooting with bullet/enemy collisions, enemy spawning on a ring around
// the player, homing enemies and the game-over check.
//
// The package is pure: it reads a Frame, a Rand and writes to a Canvas. It never
// blocks, allocates beyond the configured capacities or touches globals.
package sim

import (
	"github.com/vovakirdan/ringshot/internal/core"
)

// Enemy homes in on the player.
type Enemy struct {
	Position core.Vec2
	Size     float64
}

// Circle returns the collision circle.
func (e Enemy) Circle() core.Circle {
	return core.Circle{Center: e.Position, Radius: e.Size}
}

// Bullet travels in a straight line from where it was fired.
type Bullet struct {
	Position  core.Vec2
	Direction core.Vec2 // unit length, or zero when fired at the player's own position
	Speed     float64
	Size      float64
	Pierce    int
}

// Circle returns the collision circle.
func (b Bullet) Circle() core.Circle {
	return core.Circle{Center: b.Position, Radius: b.Size}
}

// Params holds everything needed to build an initial State. A fresh State for
// a restart is built from the same Params.
type Params struct {
	WorldW     float64
	WorldH     float64
	MaxEnemies int
	MaxBullets int

	PlayerSize  float64
	PlayerSpeed float64

	ShootDelay   float64 // seconds between shots while fire is held
	BulletSpeed  float64
	BulletSize   float64
	BulletPierce int

	GameTime     float64 // difficulty scalar at round start
	GameTimeRate float64 // added per second; 0 keeps the scalar constant
	GameTimeMin  float64
	GameTimeMax  float64

	SpawnRate         float64 // interval = 1 / GameTime / SpawnRate
	SpawnRadius       float64 // distance from the player at which enemies appear
	EnemySizeFactor   float64 // size = EnemySizeFactor * GameTime / EnemySizeDivisor
	EnemySizeDivisor  float64
	EnemyBaseSpeed    float64 // speed = EnemyBaseSpeed + GameTime / EnemySpeedDivisor
	EnemySpeedDivisor float64

	Rules Rules
}

// DefaultParams returns the stock tuning for the given world and capacities.
func DefaultParams(width, height, maxEnemies, maxBullets int) Params {
	return Params{
		WorldW:     float64(width),
		WorldH:     float64(height),
		MaxEnemies: maxEnemies,
		MaxBullets: maxBullets,

		PlayerSize:  30,
		PlayerSpeed: 1000,

		ShootDelay:   0.3,
		BulletSpeed:  30,
		BulletSize:   5,
		BulletPierce: 40,

		GameTime:    20,
		GameTimeMin: 1,
		GameTimeMax: 100,

		SpawnRate:         0.1,
		SpawnRadius:       float64(width) / 2,
		EnemySizeFactor:   8,
		EnemySizeDivisor:  20,
		EnemyBaseSpeed:    40,
		EnemySpeedDivisor: 10,

		Rules: ArcadeRules(),
	}
}

// Stats counts what happened during a round, including work that was dropped
// because a collection was full.
type Stats struct {
	Frames         int
	Elapsed        float64 // seconds simulated
	ShotsFired     int
	ShotsDropped   int
	BulletsRetired int
	EnemiesSpawned int
	SpawnsDropped  int
	Kills          int
}

// State is the complete mutable state of one round.
type State struct {
	Params Params

	PlayerPos   core.Vec2
	PlayerSize  float64
	PlayerSpeed float64
	GameTime    float64

	ShootDelay   float64
	ShootTime    float64
	BulletSpeed  float64
	BulletSize   float64
	BulletPierce int
	BulletCount  int
	Bullets      []Bullet

	SpawnTime  float64
	EnemyCount int
	Enemies    []Enemy

	Stats Stats
}

// NewState builds the initial state: player centred, nothing spawned,
// both collections pre-sized to their capacity.
func NewState(p Params) *State {
	if p.SpawnRadius == 0 {
		p.SpawnRadius = p.WorldW / 2
	}
	return &State{
		Params:       p,
		PlayerPos:    core.V(p.WorldW/2, p.WorldH/2),
		PlayerSize:   p.PlayerSize,
		PlayerSpeed:  p.PlayerSpeed,
		GameTime:     p.GameTime,
		ShootDelay:   p.ShootDelay,
		BulletSpeed:  p.BulletSpeed,
		BulletSize:   p.BulletSize,
		BulletPierce: p.BulletPierce,
		Bullets:      make([]Bullet, 0, max(p.MaxBullets, 0)),
		Enemies:      make([]Enemy, 0, max(p.MaxEnemies, 0)),
	}
}

// PlayerCircle returns the player's collision circle.
func (s *State) PlayerCircle() core.Circle {
	return core.Circle{Center: s.PlayerPos, Radius: s.PlayerSize}
}

// removeEnemy deletes the enemy at i, keeping the remaining order so that
// "first match wins" scans stay stable.
func (s *State) removeEnemy(i int) {
	copy(s.Enemies[i:], s.Enemies[i+1:])
	s.Enemies[len(s.Enemies)-1] = Enemy{}
	s.Enemies = s.Enemies[:len(s.Enemies)-1]
	s.EnemyCount--
}
