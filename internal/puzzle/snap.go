package puzzle

// DefaultSnapRatio is the fraction of the larger tile side a drop may miss by
// and still snap.
const DefaultSnapRatio = 0.35

// SnapThreshold scales the snap radius with the tile so that small tiles
// (high piece counts) are not harder to place.
func SnapThreshold(ts Size, ratio float64) float64 {
	side := ts.Width
	if ts.Height > side {
		side = ts.Height
	}
	return float64(side) * ratio
}

// Snapper judges drops against a tile's target.
type Snapper struct {
	TileSize Size
	Ratio    float64
}

// Evaluate moves t to drop and snaps it home when the drop lands within the
// threshold (inclusive). It reports whether the tile is placed and whether this
// call is what placed it; an already placed tile is left as is and never
// counts twice.
func (s Snapper) Evaluate(t *Tile, drop Point) (placed, newly bool) {
	if t.Placed {
		return true, false
	}
	// Both tiles have the same size, so the center distance equals the
	// top-left distance.
	if drop.Dist(t.Target) <= SnapThreshold(s.TileSize, s.Ratio) {
		t.Current = t.Target
		t.Rotation = 0
		t.Placed = true
		return true, true
	}
	t.Current = drop
	return false, false
}
