// internal/puzzle/drag.go
//
// Drag state machine, one per pointer: Idle → Dragging → Idle.
//
// Notes:
//   - Each pointer (mouse, or one finger of a multi-touch) holds at most one
//     tile, and a tile is held by at most one pointer.
//   - Moves are purely additive from the drag start; snapping only happens on
//     release, which the session routes to the Snapper.
//   - Cancel (pointer capture lost) releases at the last known position,
//     so no tile stays in Dragging forever.
package puzzle

import "fmt"

// PointerID identifies one pointer input stream. Mouse input uses 0.
type PointerID int

type grab struct {
	tile   int   // tile id
	start  Point // pointer position at pointer-down
	origin Point // tile position at pointer-down
}

// DragController tracks in-progress drags.
type DragController struct {
	grabs map[PointerID]*grab
	held  map[int]PointerID
	topZ  int
}

// NewDragController returns a controller with no active drags.
func NewDragController() *DragController {
	return &DragController{grabs: map[PointerID]*grab{}, held: map[int]PointerID{}}
}

// Down starts dragging tileID with pointer p and raises the tile above all others.
func (d *DragController) Down(tiles []Tile, p PointerID, tileID int, pos Point) error {
	if tileID < 0 || tileID >= len(tiles) {
		return fmt.Errorf("%w: unknown tile %d", ErrInvalidArgument, tileID)
	}
	t := &tiles[tileID]
	if t.Placed {
		return fmt.Errorf("%w: tile %d is locked in place", ErrInvalidArgument, tileID)
	}
	if g, ok := d.grabs[p]; ok {
		return fmt.Errorf("%w: pointer %d is already dragging tile %d", ErrPrematureOperation, p, g.tile)
	}
	if other, ok := d.held[tileID]; ok {
		return fmt.Errorf("%w: tile %d is held by pointer %d", ErrInvalidArgument, tileID, other)
	}

	d.grabs[p] = &grab{tile: tileID, start: pos, origin: t.Current}
	d.held[tileID] = p
	d.topZ++
	t.Z = d.topZ
	return nil
}

// Move drags the tile held by p by the pointer displacement since Down.
func (d *DragController) Move(tiles []Tile, p PointerID, pos Point) error {
	g, ok := d.grabs[p]
	if !ok {
		return fmt.Errorf("%w: pointer %d is not dragging", ErrPrematureOperation, p)
	}
	tiles[g.tile].Current = g.origin.Add(pos.Sub(g.start))
	return nil
}

// Up ends the drag of p at pos and returns the tile and its drop position.
func (d *DragController) Up(tiles []Tile, p PointerID, pos Point) (int, Point, error) {
	if err := d.Move(tiles, p, pos); err != nil {
		return 0, Point{}, err
	}
	return d.release(tiles, p)
}

// Cancel ends the drag of p at the tile's last known position.
func (d *DragController) Cancel(tiles []Tile, p PointerID) (int, Point, error) {
	if _, ok := d.grabs[p]; !ok {
		return 0, Point{}, fmt.Errorf("%w: pointer %d is not dragging", ErrPrematureOperation, p)
	}
	return d.release(tiles, p)
}

func (d *DragController) release(tiles []Tile, p PointerID) (int, Point, error) {
	g := d.grabs[p]
	delete(d.grabs, p)
	delete(d.held, g.tile)
	t := &tiles[g.tile]
	t.Z = 0
	if len(d.grabs) == 0 {
		d.topZ = 0
	}
	return g.tile, t.Current, nil
}

// Dragging reports whether some pointer holds tileID.
func (d *DragController) Dragging(tileID int) bool {
	_, ok := d.held[tileID]
	return ok
}

// Active returns the number of pointers currently dragging.
func (d *DragController) Active() int { return len(d.grabs) }

// Clear drops all drags without evaluating them (session start/reset).
func (d *DragController) Clear() {
	d.grabs = map[PointerID]*grab{}
	d.held = map[int]PointerID{}
	d.topZ = 0
}
