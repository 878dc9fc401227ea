package sim

import "math"

// Snapshot captures the scalar state of a round for determinism checks.
type Snapshot struct {
	Frame       int
	PlayerX     float64
	PlayerY     float64
	GameTime    float64
	ShootTime   float64
	SpawnTime   float64
	BulletCount int
	EnemyCount  int
	Kills       int
	BulletData  []float64 // x, y per bullet
	EnemyData   []float64 // x, y per enemy
}

// Snapshot returns the current snapshot.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:       s.Stats.Frames,
		PlayerX:     s.PlayerPos.X,
		PlayerY:     s.PlayerPos.Y,
		GameTime:    s.GameTime,
		ShootTime:   s.ShootTime,
		SpawnTime:   s.SpawnTime,
		BulletCount: s.BulletCount,
		EnemyCount:  s.EnemyCount,
		Kills:       s.Stats.Kills,
		BulletData:  make([]float64, 0, 2*len(s.Bullets)),
		EnemyData:   make([]float64, 0, 2*len(s.Enemies)),
	}
	for _, b := range s.Bullets {
		snap.BulletData = append(snap.BulletData, b.Position.X, b.Position.Y)
	}
	for _, e := range s.Enemies {
		snap.EnemyData = append(snap.EnemyData, e.Position.X, e.Position.Y)
	}
	return snap
}

// Hash folds the snapshot into a single value.
func (snap Snapshot) Hash() uint64 {
	h := uint64(snap.Frame) //#nosec G115 -- hash computation
	for _, v := range []float64{snap.PlayerX, snap.PlayerY, snap.GameTime, snap.ShootTime, snap.SpawnTime} {
		h = h*31 + math.Float64bits(v)
	}
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)       //#nosec G115 -- hash computation

	for _, v := range snap.BulletData {
		h = h*31 + math.Float64bits(v)
	}
	for _, v := range snap.EnemyData {
		h = h*31 + math.Float64bits(v)
	}
	return h
}
