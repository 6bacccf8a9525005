// internal/puzzle/tiles.go
//
// Tile model: crop rectangles in source-image pixels and target cells on the board.
//
// Responsibilities:
//   - Cover-fit the source image onto the board (center crop, excess trimmed equally).
//   - Build the row-major tile list with immutable crop/target geometry.
//
// Tile positions (Target, Current) are board-relative: (0,0) is the board's top-left.
package puzzle

import "fmt"

// Tile is one jigsaw piece.
type Tile struct {
	ID  int `json:"id"` // r*cols + c, stable for the session
	Row int `json:"row"`
	Col int `json:"col"`

	Crop   Rect  `json:"crop"`   // source-image pixels
	Target Point `json:"target"` // board-relative solved position

	Current    Point   `json:"current"`    // board-relative, moves during drag/scatter
	Positioned bool    `json:"positioned"` // false until the first scatter
	Rotation   float64 `json:"rotation"`   // degrees, cosmetic
	Z          int     `json:"z"`          // stacking order, raised while dragged
	Placed     bool    `json:"placed"`
}

// TileSize returns the per-tile pixel size: floor(board / grid).
func TileSize(g Grid, board Size) Size {
	if g.Rows <= 0 || g.Cols <= 0 {
		return Size{}
	}
	return Size{Width: board.Width / g.Cols, Height: board.Height / g.Rows}
}

// CoverCrop returns the centered region of image that has the same aspect
// ratio as board. The other dimension is used in full.
func CoverCrop(image, board Size) Rect {
	iw, ih := float64(image.Width), float64(image.Height)
	bw, bh := float64(board.Width), float64(board.Height)
	if iw*bh > ih*bw {
		// image is wider than the board: trim left and right
		w := ih * bw / bh
		return Rect{X: (iw - w) / 2, Y: 0, W: w, H: ih}
	}
	h := iw * bh / bw
	return Rect{X: 0, Y: (ih - h) / 2, W: iw, H: h}
}

// BuildTiles creates rows*cols tiles for the given board and image.
// It has no side effects; tiles start unplaced and unpositioned.
func BuildTiles(g Grid, board, image Size) ([]Tile, error) {
	if image.Empty() {
		return nil, fmt.Errorf("%w: image size unknown", ErrNotReady)
	}
	ts := TileSize(g, board)
	if ts.Empty() {
		return nil, fmt.Errorf("%w: board %dx%d too small for %dx%d grid",
			ErrInvalidArgument, board.Width, board.Height, g.Rows, g.Cols)
	}

	// crop against the board the tiles actually cover, not the leftover pixels
	effective := Size{Width: ts.Width * g.Cols, Height: ts.Height * g.Rows}
	src := CoverCrop(image, effective)
	cw := src.W / float64(g.Cols)
	ch := src.H / float64(g.Rows)

	tiles := make([]Tile, 0, g.Count())
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			tiles = append(tiles, Tile{
				ID:  r*g.Cols + c,
				Row: r,
				Col: c,
				Crop: Rect{
					X: src.X + float64(c)*cw,
					Y: src.Y + float64(r)*ch,
					W: cw,
					H: ch,
				},
				Target: Point{X: float64(c * ts.Width), Y: float64(r * ts.Height)},
			})
		}
	}
	return tiles, nil
}
