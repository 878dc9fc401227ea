// Package ringshot adapts the sim package to the platform's Game interface:
// it loads configuration, owns the round state and draw list, applies the
// game-over policy and renders onto a terminal screen.
package ringshot

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ringshot/internal/config"
	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/registry"
	"github.com/vovakirdan/ringshot/internal/sim"
)

// Mode selects which rules a Game plays with.
type Mode string

const (
	ModeArcade  Mode = "ringshot"
	ModeClassic Mode = "ringshot_classic"
)

// Game implements registry.Game for ringshot.
type Game struct {
	mode   Mode
	cfg    config.RingshotConfig
	source string
	seed   int64
	rng    *sim.SeededRand

	state *sim.State
	draw  sim.DrawList
	stats sim.Stats // last logged stats, for deltas

	screenW int
	screenH int

	gameOver   bool
	paused     bool
	touching   bool // an enemy overlapped the player last frame
	collisions int  // collisions ignored under the continue policy
	rounds     int

	pending *core.Run
}

// Package-level settings shared by every instance, set once from the CLI.
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a config file that overrides the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on every reset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger sets the logger used by all games. nil restores the silent default.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates an arcade mode game.
func New() *Game {
	return &Game{mode: ModeArcade}
}

// NewClassic creates a game with the classic rules: bullets are never
// retired, pierce does nothing and collisions don't end the round.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

func init() {
	registry.Register(string(ModeArcade), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Ringshot (Classic)"
	}
	return "Ringshot"
}

// Reset loads configuration and starts a fresh round.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg, g.source = loadConfig(g.mode)
	g.seed = rc.Seed
	g.rng = sim.NewRand(rc.Seed)
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH

	g.state = sim.NewState(g.cfg.Params())
	g.draw = make(sim.DrawList, 0, 1+g.cfg.Capacity.MaxBullets+g.cfg.Capacity.MaxEnemies)
	g.stats = sim.Stats{}
	g.gameOver = false
	g.paused = false
	g.touching = false
	g.collisions = 0
	g.rounds = 0
	g.pending = nil

	logger.Debug("round reset",
		"mode", g.mode,
		"config", g.source,
		"seed", g.seed,
		"game_time", g.state.GameTime,
		"rules", g.cfg.Rules)
}

// loadConfig resolves configuration for a mode, falling back to defaults when
// the file can't be read or fails validation.
func loadConfig(mode Mode) (config.RingshotConfig, string) {
	cfg, source, err := config.LoadSource(configPath)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg, source = config.DefaultRingshotConfig(), config.EmbeddedSource
	}

	preset, err := config.ParsePreset(difficultyPreset)
	if err != nil {
		logger.Warn("ignoring difficulty preset", "err", err)
	}
	config.ApplyPreset(&cfg, preset)

	if mode == ModeClassic {
		cfg.Rules = sim.ClassicRules()
	}
	return cfg, source
}

// Step advances the round by in.Dt seconds, clamped to the configured
// maximum frame time.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		g.Reset(core.DefaultConfig())
	}

	// Handle restart. A round abandoned mid-play is still recorded.
	if in.Has(core.ActionRestart) {
		if !g.gameOver && g.state.Stats.Frames > 0 {
			g.finishRound()
		}
		pending := g.pending
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		g.pending = pending
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := core.ClampF(in.Dt, 0, g.cfg.Platform.MaxFrameTime)

	g.draw.Reset()
	tr := sim.Step(g.state, sim.Frame{Dt: dt, Input: in}, &g.draw, g.rng)
	g.logStatDeltas()

	if tr.Outcome == sim.GameOver {
		g.applyGameOver(tr)
	} else {
		g.touching = false
	}

	return core.StepResult{State: g.State()}
}

// applyGameOver consumes a GameOver transition according to the round's policy.
func (g *Game) applyGameOver(tr sim.Transition) {
	switch g.cfg.Rules.GameOver {
	case sim.GameOverContinue:
		// An enemy parked on the player counts once, not once per frame.
		if !g.touching {
			g.collisions++
			logger.Debug("collision ignored", "enemy", tr.Collider, "collisions", g.collisions)
		}
		g.touching = true
	case sim.GameOverReset:
		g.finishRound()
		g.state = tr.Next
		g.stats = sim.Stats{}
		g.rounds++
	default:
		g.finishRound()
		g.gameOver = true
	}
}

// finishRound records the current round as a Run for TakeRun.
func (g *Game) finishRound() {
	run := g.runRecord()
	g.pending = &run
	logger.Info("game over",
		"mode", run.Mode,
		"kills", run.Kills,
		"survived", run.Survived,
		"shots", run.ShotsFired)
}

func (g *Game) runRecord() core.Run {
	st := g.state.Stats
	return core.Run{
		Mode:          string(g.mode),
		Kills:         st.Kills,
		Survived:      st.Elapsed,
		ShotsFired:    st.ShotsFired,
		ShotsDropped:  st.ShotsDropped,
		SpawnsDropped: st.SpawnsDropped,
		Difficulty:    g.state.GameTime,
		Seed:          g.seed,
	}
}

// logStatDeltas reports capacity drops since the previous frame.
func (g *Game) logStatDeltas() {
	cur := g.state.Stats
	if n := cur.ShotsDropped - g.stats.ShotsDropped; n > 0 {
		logger.Debug("bullet capacity reached", "dropped", n, "bullets", g.state.BulletCount)
	}
	if n := cur.SpawnsDropped - g.stats.SpawnsDropped; n > 0 {
		logger.Debug("enemy capacity reached", "dropped", n, "enemies", g.state.EnemyCount)
	}
	g.stats = cur
}

// TakeRun returns the most recently finished round once, then clears it.
func (g *Game) TakeRun() (core.Run, bool) {
	if g.pending == nil {
		return core.Run{}, false
	}
	run := *g.pending
	g.pending = nil
	return run, true
}

// State returns the current game state. Score is the number of kills.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Stats.Kills,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Sim exposes the round state for front ends that draw their own HUD.
func (g *Game) Sim() *sim.State {
	return g.state
}

// DrawList returns the draw calls recorded during the last Step.
func (g *Game) DrawList() sim.DrawList {
	return g.draw
}

// Config returns the configuration the current round was built from.
func (g *Game) Config() config.RingshotConfig {
	return g.cfg
}

// Collisions returns how many collisions were ignored under the continue
// policy. Consecutive frames of overlap count as one collision.
func (g *Game) Collisions() int {
	return g.collisions
}

// Rounds returns how many times the round was replaced under the reset policy.
func (g *Game) Rounds() int {
	return g.rounds
}
