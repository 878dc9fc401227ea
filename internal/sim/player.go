package sim

import "github.com/vovakirdan/ringshot/internal/core"

// MovePlayer moves the player along one axis for a key pressed this frame.
// Presses are checked up, left, right, down; the first wins. No clamping.
func MovePlayer(s *State, in core.InputFrame, dt float64) {
	step := s.PlayerSpeed * dt

	switch {
	case in.Has(core.ActionUp):
		s.PlayerPos.Y -= step
	case in.Has(core.ActionLeft):
		s.PlayerPos.X -= step
	case in.Has(core.ActionRight):
		s.PlayerPos.X += step
	case in.Has(core.ActionDown):
		s.PlayerPos.Y += step
	}
}
