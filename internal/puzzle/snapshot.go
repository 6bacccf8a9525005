package puzzle

// TileView is the render-facing part of a tile.
type TileView struct {
	ID         int     `json:"id"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Crop       Rect    `json:"crop"`
	Current    Point   `json:"current"`
	Positioned bool    `json:"positioned"`
	Rotation   float64 `json:"rotation"`
	Z          int     `json:"z"`
	Placed     bool    `json:"placed"`
	Dragging   bool    `json:"dragging"`
}

// Ghost is the translucent full-image overlay drawn over the board.
type Ghost struct {
	Visible bool    `json:"visible"`
	Opacity float64 `json:"opacity"`
	Crop    Rect    `json:"crop"` // source-image pixels covering the whole board
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Phase          Phase      `json:"phase"`
	LoadToken      uint64     `json:"loadToken"`
	Image          string     `json:"image,omitempty"`
	Grid           Grid       `json:"grid"`
	TileSize       Size       `json:"tileSize"`
	Layout         Layout     `json:"layout"`
	Tiles          []TileView `json:"tiles"`
	PlacedCount    int        `json:"placedCount"`
	TotalCount     int        `json:"totalCount"`
	ElapsedSeconds int        `json:"elapsedSeconds"`
	Running        bool       `json:"running"`
	Ghost          Ghost      `json:"ghost"`
	Result         *Result    `json:"result,omitempty"`
}

// Snapshot copies the current state. The copy shares nothing with the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.phase,
		LoadToken:      s.gen,
		Grid:           s.grid,
		TileSize:       s.tsize,
		Layout:         s.layout,
		Tiles:          make([]TileView, 0, len(s.tiles)),
		PlacedCount:    s.placed,
		TotalCount:     s.grid.Count(),
		ElapsedSeconds: s.Elapsed(),
		Running:        s.running,
		Ghost:          Ghost{Visible: s.ghost, Opacity: s.opts.GhostOpacity},
	}
	if s.last != nil {
		snap.Image = s.last.Image
	}
	if !s.image.Empty() {
		snap.Ghost.Crop = CoverCrop(s.image, Size{
			Width:  s.tsize.Width * s.grid.Cols,
			Height: s.tsize.Height * s.grid.Rows,
		})
	}
	for _, t := range s.tiles {
		snap.Tiles = append(snap.Tiles, TileView{
			ID:         t.ID,
			Row:        t.Row,
			Col:        t.Col,
			Crop:       t.Crop,
			Current:    t.Current,
			Positioned: t.Positioned,
			Rotation:   t.Rotation,
			Z:          t.Z,
			Placed:     t.Placed,
			Dragging:   s.drag.Dragging(t.ID),
		})
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}
