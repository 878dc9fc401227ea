package sim

import (
	"math/rand"

	"github.com/vovakirdan/ringshot/internal/core"
)

// Entity colours.
const (
	PlayerColor = core.ColorGreen
	BulletColor = core.ColorYellow
	EnemyColor  = core.ColorRed
)

// Frame is what the presentation surface hands the simulation each frame.
type Frame struct {
	Dt    float64 // seconds since the previous frame
	Input core.InputFrame
}

// Canvas receives filled-circle draw calls in the order the simulation
// traverses its entities. Coordinates are world units truncated to integers.
type Canvas interface {
	DrawCircle(x, y int, radius float64, c core.Color)
}

// Rand yields uniformly distributed integers in [lo, hi).
type Rand interface {
	IntRange(lo, hi int) int
}

// DrawCall is one recorded circle.
type DrawCall struct {
	X, Y   int
	Radius float64
	Color  core.Color
}

// DrawList is a Canvas that records calls for a front end to replay later.
type DrawList []DrawCall

// DrawCircle implements Canvas.
func (d *DrawList) DrawCircle(x, y int, radius float64, c core.Color) {
	*d = append(*d, DrawCall{X: x, Y: y, Radius: radius, Color: c})
}

// Reset empties the list, keeping its storage.
func (d *DrawList) Reset() {
	*d = (*d)[:0]
}

// Count returns how many calls used the given colour.
func (d DrawList) Count(c core.Color) int {
	n := 0
	for _, call := range d {
		if call.Color == c {
			n++
		}
	}
	return n
}

type nopCanvas struct{}

func (nopCanvas) DrawCircle(int, int, float64, core.Color) {}

// NopCanvas discards every draw call.
var NopCanvas Canvas = nopCanvas{}

// SeededRand is a Rand backed by math/rand with a fixed seed, so a round can
// be replayed from its seed and inputs.
type SeededRand struct {
	r *rand.Rand
}

// NewRand creates a seeded generator.
func NewRand(seed int64) *SeededRand {
	return &SeededRand{r: rand.New(rand.NewSource(seed))}
}

// IntRange implements Rand. An empty range returns lo.
func (s *SeededRand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Intn(hi-lo)
}

// Int63 returns a non-negative value, used to seed the next round.
func (s *SeededRand) Int63() int64 {
	return s.r.Int63()
}
