package puzzle

import (
	"fmt"
	"math/rand"
)

// Layout places the board inside the viewport. Both rects share one local
// coordinate space (whatever the page translates pointer events into).
type Layout struct {
	Board    Rect `json:"board"`
	Viewport Rect `json:"viewport"`
}

// BoardSize is the board's rendered pixel size, truncated.
func (l Layout) BoardSize() Size {
	return Size{Width: int(l.Board.W), Height: int(l.Board.H)}
}

// validate checks that tiles of size ts can be laid out at all.
func (l Layout) validate(ts Size) error {
	if ts.Empty() {
		return fmt.Errorf("%w: board %.0fx%.0f too small for the grid", ErrInvalidArgument, l.Board.W, l.Board.H)
	}
	if l.Viewport.W < float64(ts.Width) || l.Viewport.H < float64(ts.Height) {
		return fmt.Errorf("%w: viewport %.0fx%.0f smaller than a %dx%d tile",
			ErrInvalidArgument, l.Viewport.W, l.Viewport.H, ts.Width, ts.Height)
	}
	return nil
}

// Scatterer throws unplaced tiles into the trays left and right of the board.
type Scatterer struct {
	Rand         *rand.Rand
	Margin       float64 // gap kept from the viewport and board edges
	MinZoneWidth float64 // narrower trays fall back to the band above the board
	MaxRotation  float64 // degrees, symmetric around 0
}

// Scatter repositions every unplaced tile. Placed tiles are not touched.
// Every scattered tile ends up fully inside the viewport.
func (s *Scatterer) Scatter(tiles []Tile, ts Size, l Layout) {
	tw, th := float64(ts.Width), float64(ts.Height)
	vp, b := l.Viewport, l.Board

	top := s.Margin + vp.Y
	bottom := vp.Bottom() - s.Margin - th
	left := zone{x1: vp.X + s.Margin, x2: b.X - s.Margin - tw, y1: top, y2: bottom}
	right := zone{x1: b.Right() + s.Margin, x2: vp.Right() - s.Margin - tw, y1: top, y2: bottom}
	above := zone{x1: b.X, x2: b.Right() - tw, y1: top, y2: b.Y - s.Margin - th}

	for i := range tiles {
		t := &tiles[i]
		if t.Placed {
			continue
		}
		z := left
		if s.Rand.Float64() >= 0.5 {
			z = right
		}
		if z.x2-z.x1 < s.MinZoneWidth {
			z = above
		}
		x := clampF(s.uniform(z.x1, z.x2), vp.X, vp.Right()-tw)
		y := clampF(s.uniform(z.y1, z.y2), vp.Y, vp.Bottom()-th)

		t.Current = Point{X: x, Y: y}.Sub(b.Origin())
		t.Positioned = true
		t.Rotation = (s.Rand.Float64()*2 - 1) * s.MaxRotation
		t.Z = 0
	}
}

type zone struct{ x1, x2, y1, y2 float64 }

// uniform samples [lo, hi]; a collapsed range yields lo.
func (s *Scatterer) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Rand.Float64()*(hi-lo)
}
