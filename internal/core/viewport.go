package core

// Viewport maps world units onto a rectangle of terminal cells. The world is
// stretched to fill the area on both axes.
type Viewport struct {
	WorldW float64
	WorldH float64
	Area   Rect
}

// Scale returns cells per world unit on each axis.
func (v Viewport) Scale() (sx, sy float64) {
	if v.WorldW <= 0 || v.WorldH <= 0 {
		return 0, 0
	}
	return float64(v.Area.W) / v.WorldW, float64(v.Area.H) / v.WorldH
}

// ToCell projects a world point to fractional cell coordinates.
func (v Viewport) ToCell(p Vec2) (x, y float64) {
	sx, sy := v.Scale()
	return float64(v.Area.X) + p.X*sx, float64(v.Area.Y) + p.Y*sy
}

// ToWorld returns the world point under the centre of a cell.
func (v Viewport) ToWorld(col, row int) Vec2 {
	sx, sy := v.Scale()
	if sx == 0 || sy == 0 {
		return Vec2{}
	}
	return Vec2{
		X: (float64(col-v.Area.X) + 0.5) / sx,
		Y: (float64(row-v.Area.Y) + 0.5) / sy,
	}
}
