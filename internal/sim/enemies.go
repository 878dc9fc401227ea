package sim

import (
	"math"

	"github.com/vovakirdan/ringshot/internal/core"
)

// SpawnInterval returns the seconds between spawns for the current difficulty,
// or +Inf when spawning is disabled.
func (s *State) SpawnInterval() float64 {
	if s.GameTime <= 0 || s.Params.SpawnRate <= 0 {
		return math.Inf(1)
	}
	return 1 / s.GameTime / s.Params.SpawnRate
}

// EnemySpeed returns the homing speed for the current difficulty.
func (s *State) EnemySpeed() float64 {
	if s.Params.EnemySpeedDivisor == 0 {
		return s.Params.EnemyBaseSpeed
	}
	return s.Params.EnemyBaseSpeed + s.GameTime/s.Params.EnemySpeedDivisor
}

// EnemySize returns the radius new enemies get at the current difficulty.
func (s *State) EnemySize() float64 {
	if s.Params.EnemySizeDivisor == 0 {
		return s.Params.EnemySizeFactor
	}
	return s.Params.EnemySizeFactor * s.GameTime / s.Params.EnemySizeDivisor
}

// SpawnEnemies banks frame time and places one enemy per elapsed interval on
// the ring around the player, until the enemy list is full.
func SpawnEnemies(s *State, dt float64, rng Rand) {
	interval := s.SpawnInterval()
	s.SpawnTime += dt

	for s.SpawnTime >= interval {
		if s.EnemyCount >= s.Params.MaxEnemies {
			s.dropSpawnBacklog(interval)
			break
		}

		angle := rng.IntRange(0, 360)
		offset := core.FromAngle(float64(angle)).Scale(s.Params.SpawnRadius)

		s.Enemies = append(s.Enemies, Enemy{
			Position: s.PlayerPos.Add(offset),
			Size:     s.EnemySize(),
		})
		s.EnemyCount++
		s.Stats.EnemiesSpawned++
		s.SpawnTime -= interval
	}
}

func (s *State) dropSpawnBacklog(interval float64) {
	n := math.Floor(s.SpawnTime / interval)
	s.Stats.SpawnsDropped += int(n)
	s.SpawnTime -= n * interval
}

// UpdateEnemies moves every enemy straight toward the player and draws it.
func UpdateEnemies(s *State, dt float64, cv Canvas) {
	speed := s.EnemySpeed()

	for i := range s.Enemies {
		e := &s.Enemies[i]
		dir := s.PlayerPos.Sub(e.Position).Normalized()
		e.Position = e.Position.Add(dir.Scale(speed * dt))

		cv.DrawCircle(int(e.Position.X), int(e.Position.Y), e.Size, EnemyColor)
	}
}
