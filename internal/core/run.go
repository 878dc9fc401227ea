package core

// Run summarises one finished round for the score history.
type Run struct {
	Mode          string
	Kills         int
	Survived      float64 // seconds
	ShotsFired    int
	ShotsDropped  int
	SpawnsDropped int
	Difficulty    float64 // difficulty scalar when the round ended
	Seed          int64
}
