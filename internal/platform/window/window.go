// Package window runs a game in a desktop window with Ebitengine: real
// circles, mouse aim and sound cues.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/platform/audio"
	"github.com/vovakirdan/ringshot/internal/platform/session"
	"github.com/vovakirdan/ringshot/internal/sim"
)

// Round is a game the window can draw.
type Round interface {
	session.Round
	DrawList() sim.DrawList
	HUD() string
}

var (
	background = color.RGBA{R: 12, G: 12, B: 20, A: 255}
	dimmer     = color.RGBA{A: 160}

	palette = map[core.Color]color.RGBA{
		core.ColorDefault: {R: 220, G: 220, B: 220, A: 255},
		core.ColorRed:     {R: 230, G: 60, B: 60, A: 255},
		core.ColorGreen:   {R: 80, G: 220, B: 100, A: 255},
		core.ColorYellow:  {R: 240, G: 210, B: 70, A: 255},
		core.ColorCyan:    {R: 80, G: 210, B: 230, A: 255},
		core.ColorWhite:   {R: 255, G: 255, B: 255, A: 255},
		core.ColorGray:    {R: 130, G: 130, B: 130, A: 255},
	}
)

// edgeKeys map just-pressed keys to edge actions.
var edgeKeys = map[ebiten.Key]core.Action{
	ebiten.KeyW:          core.ActionUp,
	ebiten.KeyArrowUp:    core.ActionUp,
	ebiten.KeyA:          core.ActionLeft,
	ebiten.KeyArrowLeft:  core.ActionLeft,
	ebiten.KeyD:          core.ActionRight,
	ebiten.KeyArrowRight: core.ActionRight,
	ebiten.KeyS:          core.ActionDown,
	ebiten.KeyArrowDown:  core.ActionDown,
	ebiten.KeyP:          core.ActionPause,
	ebiten.KeyEscape:     core.ActionPause,
	ebiten.KeyR:          core.ActionRestart,
}

// App implements ebiten.Game.
type App struct {
	session *session.Session
	round   Round
	sounds  *audio.Player
	width   int
	height  int
}

// New wraps a session whose round can be drawn. sounds may be nil.
func New(s *session.Session, sounds *audio.Player) (*App, error) {
	round, ok := s.Round().(Round)
	if !ok {
		return nil, fmt.Errorf("window: %s cannot be drawn in a window", s.Round().ID())
	}
	st := round.Sim()
	if st == nil {
		return nil, errors.New("window: round has no state")
	}
	return &App{
		session: s,
		round:   round,
		sounds:  sounds,
		width:   int(st.Params.WorldW),
		height:  int(st.Params.WorldH),
	}, nil
}

// Update polls input and advances the round.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && a.sounds != nil {
		a.sounds.SetMuted(!a.sounds.Muted())
	}

	cx, cy := ebiten.CursorPosition()
	in := session.Input{
		Pointer:  core.V(float64(cx), float64(cy)),
		FireHeld: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ToggleFire: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyF),
	}
	for k, action := range edgeKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Actions = append(in.Actions, action)
		}
	}

	a.session.Advance(in, time.Now())
	return nil
}

// Draw replays the round's draw list as filled circles, then the HUD.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	calls := a.round.DrawList()
	if len(calls) == 0 {
		if st := a.round.Sim(); st != nil {
			calls = sim.DrawList{{
				X:      int(st.PlayerPos.X),
				Y:      int(st.PlayerPos.Y),
				Radius: st.PlayerSize,
				Color:  sim.PlayerColor,
			}}
		}
	}
	for _, c := range calls {
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.Radius), palette[c.Color], true)
	}

	ebitenutil.DebugPrintAt(screen, a.round.HUD(), 8, 6)
	help := "Mouse: aim/fire  Space/F: trigger  WASD: step  P: pause  R: restart  M: mute  Q: quit"
	if a.session.Latched() {
		help = "[TRIGGER ON]  " + help
	}
	ebitenutil.DebugPrintAt(screen, help, 8, a.height-20)

	state := a.session.State()
	switch {
	case state.GameOver:
		a.drawOverlay(screen, "GAME OVER", fmt.Sprintf("Kills: %d   Best: %d   Press R to restart", state.Score, a.session.Best()))
	case state.Paused:
		a.drawOverlay(screen, "PAUSED", "Press P to continue")
	}
}

// drawOverlay dims the field and prints two centred lines.
func (a *App) drawOverlay(screen *ebiten.Image, line1, line2 string) {
	vector.DrawFilledRect(screen, 0, 0, float32(a.width), float32(a.height), dimmer, false)
	// The debug font is 6px wide and 16px tall.
	ebitenutil.DebugPrintAt(screen, line1, (a.width-6*len(line1))/2, a.height/2-20)
	ebitenutil.DebugPrintAt(screen, line2, (a.width-6*len(line2))/2, a.height/2+4)
}

// Layout keeps the logical screen in world units, so the cursor position is
// already a world point.
func (a *App) Layout(_, _ int) (int, int) {
	return a.width, a.height
}

// Run opens the window and blocks until it is closed.
func Run(app *App, title string, tickRate int) error {
	ebiten.SetWindowSize(app.width, app.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if tickRate > 0 {
		ebiten.SetTPS(tickRate)
	}

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
