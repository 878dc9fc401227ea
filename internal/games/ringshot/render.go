package ringshot

import (
	"fmt"

	"github.com/vovakirdan/ringshot/internal/core"
	"github.com/vovakirdan/ringshot/internal/sim"
)

const (
	hudHeight = 2
	minWidth  = 30
	minHeight = hudHeight + 6
)

// glyphs per entity colour.
var glyphs = map[core.Color]rune{
	sim.PlayerColor: '@',
	sim.BulletColor: '•',
	sim.EnemyColor:  '█',
}

// Viewport returns the mapping from world units to the playfield below the HUD.
func (g *Game) Viewport(screenW, screenH int) core.Viewport {
	return core.Viewport{
		WorldW: float64(g.cfg.World.Width),
		WorldH: float64(g.cfg.World.Height),
		Area:   core.NewRect(0, hudHeight, screenW, max(0, screenH-hudHeight)),
	}
}

// Render draws the last frame's circles, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	if dst.Width() < minWidth || dst.Height() < minHeight {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderField(dst)
	g.renderHUD(dst)

	switch {
	case g.gameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Kills: %d  Press R to restart", g.state.Stats.Kills))
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderField replays the draw list in recorded order so later entities
// overwrite earlier ones, as on a real canvas.
func (g *Game) renderField(dst *core.Screen) {
	vp := g.Viewport(dst.Width(), dst.Height())
	sx, sy := vp.Scale()

	calls := g.draw
	if len(calls) == 0 {
		// Nothing stepped yet: show the player where it stands.
		calls = sim.DrawList{{
			X:      int(g.state.PlayerPos.X),
			Y:      int(g.state.PlayerPos.Y),
			Radius: g.state.PlayerSize,
			Color:  sim.PlayerColor,
		}}
	}

	for _, c := range calls {
		cx, cy := vp.ToCell(core.V(float64(c.X), float64(c.Y)))
		dst.FillEllipse(cx, cy, c.Radius*sx, c.Radius*sy, glyphs[c.Color], c.Color)
	}
}

// renderHUD draws the top status bar over anything the field spilled into it.
func (g *Game) renderHUD(dst *core.Screen) {
	for y := 0; y < hudHeight; y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawText(0, 0, " "+g.HUD())

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// HUD returns the one-line status shown above the field.
func (g *Game) HUD() string {
	s := g.state
	if s == nil {
		return g.Title()
	}
	hud := fmt.Sprintf("%s | Kills: %d  Time: %.1fs  Bullets: %d/%d  Enemies: %d/%d  Difficulty: %.1f",
		g.Title(), s.Stats.Kills, s.Stats.Elapsed,
		s.BulletCount, s.Params.MaxBullets, s.EnemyCount, s.Params.MaxEnemies, s.GameTime)
	if g.collisions > 0 {
		hud += fmt.Sprintf("  Hits taken: %d", g.collisions)
	}
	return hud
}

// renderOverlay draws a centred box with two lines of text.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w, h := dst.Width(), dst.Height()

	maxLen := max(len([]rune(line1)), len([]rune(line2)))
	box := core.NewRect((w-(maxLen+4))/2, (h-5)/2, maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(box.W-len([]rune(line1)))/2, box.Y+1, line1)
	dst.DrawText(box.X+(box.W-len([]rune(line2)))/2, box.Y+3, line2)
}
