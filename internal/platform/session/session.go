// Package session drives a game from a polling front end: it turns one
// frame's raw input into an InputFrame, measures the delta, steps the game,
// persists finished runs and derives sound cues.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/platform/audio"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/sim"
	"github.com/vovakirdan/ringshot/internal/storage"
)

// Round is a game that exposes its simulation for drawing and cues.
type Round interface {
	registry.Game
	Sim() *sim.State
	Collisions() int
	Rounds() int
}

// Sounds plays cues. *audio.Player implements it.
type Sounds interface {
	PlayAll(cues []audio.Cue)
}

type runReporter interface {
	TakeRun() (core.Run, bool)
}

// Input is what the front end polled during one frame.
type Input struct {
	Pointer    core.Vec2     // world units
	FireHeld   bool          // button down for the whole frame
	ToggleFire bool          // latch toggle pressed this frame
	Actions    []core.Action // edge presses this frame
}

// Option configures a Session.
type Option func(*Session)

// WithStore saves finished runs to store.
func WithStore(store *storage.Store) Option {
	return func(s *Session) { s.store = store }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSounds plays cues on sounds.
func WithSounds(sounds Sounds) Option {
	return func(s *Session) { s.sounds = sounds }
}

// Session owns the frame-to-frame state between a front end and a round.
type Session struct {
	round  Round
	store  *storage.Store
	logger *log.Logger
	sounds Sounds
	cfg    core.RuntimeConfig

	frame   core.InputFrame
	latched bool
	last    time.Time
	tally   audio.Tally
	state   core.GameState
	best    int
}

// New resets round with cfg and returns a session driving it.
func New(round Round, cfg core.RuntimeConfig, opts ...Option) *Session {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	s := &Session{
		round:  round,
		logger: log.New(io.Discard),
		cfg:    cfg,
		frame:  core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store != nil {
		best, err := s.store.HighScore(round.ID())
		if err != nil {
			s.logger.Warn("could not read high score", "err", err)
		}
		s.best = best
	}

	round.Reset(cfg)
	s.state = round.State()
	s.tally = s.currentTally()
	return s
}

// Advance steps the round once with in, measuring dt from the previous call.
// The first frame uses the nominal frame time.
func (s *Session) Advance(in Input, now time.Time) core.GameState {
	dt := s.cfg.FrameTime()
	if !s.last.IsZero() {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now

	if in.ToggleFire {
		s.latched = !s.latched
	}
	for _, a := range in.Actions {
		if a != core.ActionFire {
			s.frame.Set(a)
		}
	}
	s.frame.Pointer = in.Pointer
	s.frame.Dt = dt
	s.frame.SetHeld(core.ActionFire, in.FireHeld || s.latched)

	s.state = s.round.Step(s.frame).State
	s.frame.Clear()

	cur := s.currentTally()
	if s.sounds != nil {
		s.sounds.PlayAll(audio.Cues(s.tally, cur))
	}
	s.tally = cur

	s.saveRun()
	return s.state
}

func (s *Session) currentTally() audio.Tally {
	t := audio.Tally{
		Collisions: s.round.Collisions(),
		Rounds:     s.round.Rounds(),
		GameOver:   s.state.GameOver,
	}
	if st := s.round.Sim(); st != nil {
		t.Shots = st.Stats.ShotsFired
		t.Kills = st.Stats.Kills
	}
	return t
}

// saveRun persists a finished run, once.
func (s *Session) saveRun() {
	rr, ok := s.round.(runReporter)
	if !ok {
		return
	}
	run, ok := rr.TakeRun()
	if !ok || s.store == nil {
		return
	}
	if _, err := s.store.SaveRun(run); err != nil {
		s.logger.Warn("could not save run", "err", err)
		return
	}
	s.best = max(s.best, run.Kills)
}

// Round returns the driven game.
func (s *Session) Round() Round {
	return s.round
}

// State returns the state after the last Advance.
func (s *Session) State() core.GameState {
	return s.state
}

// Best returns the most kills in a stored run of the round's mode, including
// runs saved by this session. It is 0 without a store.
func (s *Session) Best() int {
	return s.best
}

// Latched reports whether the keyboard trigger is on.
func (s *Session) Latched() bool {
	return s.latched
}
