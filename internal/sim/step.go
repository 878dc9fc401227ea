package sim

import "github.com/vovakirdan/ringshot/internal/core"

// Outcome tags a Transition.
type Outcome int

const (
	Continue Outcome = iota
	GameOver
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == GameOver {
		return "game_over"
	}
	return "continue"
}

// Transition is the result of one Step. On GameOver, Next is a freshly built
// initial state with the same parameters; the caller decides whether to use it.
type Transition struct {
	Outcome  Outcome
	Next     *State
	Collider int // index of the first enemy touching the player, -1 if none
}

// CheckGameOver returns the index of the first enemy whose circle touches the
// player, or -1.
func CheckGameOver(s *State) int {
	player := s.PlayerCircle()
	for i, e := range s.Enemies {
		if e.Circle().Overlaps(player) {
			return i
		}
	}
	return -1
}

// Step runs one frame: draw the player, shoot, move, spawn, move enemies and
// check for game over. Draw calls reach cv in that order.
func Step(s *State, f Frame, cv Canvas, rng Rand) Transition {
	if cv == nil {
		cv = NopCanvas
	}
	dt := f.Dt

	cv.DrawCircle(int(s.PlayerPos.X), int(s.PlayerPos.Y), s.PlayerSize, PlayerColor)

	ShootBullets(s, f.Input, dt, cv)
	MovePlayer(s, f.Input, dt)
	SpawnEnemies(s, dt, rng)
	UpdateEnemies(s, dt, cv)

	s.Stats.Frames++
	s.Stats.Elapsed += dt

	collider := CheckGameOver(s)
	advanceGameTime(s, dt)

	if collider >= 0 {
		return Transition{
			Outcome:  GameOver,
			Next:     NewState(s.Params),
			Collider: collider,
		}
	}
	return Transition{Outcome: Continue, Collider: -1}
}

// advanceGameTime applies the configured drift of the difficulty scalar.
func advanceGameTime(s *State, dt float64) {
	rate := s.Params.GameTimeRate
	if rate == 0 {
		return
	}
	lo, hi := s.Params.GameTimeMin, s.Params.GameTimeMax
	if hi < lo {
		hi = lo
	}
	s.GameTime = core.ClampF(s.GameTime+rate*dt, lo, hi)
}
