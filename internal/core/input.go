package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionDown           // S, Down arrow - move down
	ActionFire           // Mouse button or latched trigger - held, not edge
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionFire:
		return "Fire"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one frame.
//
// Actions hold edge-triggered presses that happened since the previous frame.
// Held holds controls that are down for the whole frame (fire).
// Pointer is the aim target in world units, Dt the measured frame delta in seconds.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
	Pointer Vec2
	Dt      float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetHeld records whether a continuous control is down.
func (f *InputFrame) SetHeld(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
		return
	}
	delete(f.Held, a)
}

// IsHeld returns true if the control is down for this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear resets edge actions for the next frame.
// Held controls, the pointer and the delta persist until the platform changes them.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

