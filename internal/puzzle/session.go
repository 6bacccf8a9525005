// internal/puzzle/session.go
//
// GameSession: the single owner of a game's grid, tiles, counters and clock.
//
// Responsibilities:
//   - start/replay/reset lifecycle, gated on the image pixel size being known.
//   - Route pointer events through the DragController and drops through the Snapper.
//   - Keep placedCount in step with the tiles and detect completion exactly once.
//   - Clock steps (Tick) that stop counting at completion.
//
// Notes:
//   - A Session is not safe for concurrent use; the store serializes access per game.
//   - Every failing call returns before mutating anything.
//   - Load tokens: each Start bumps a generation counter. An image size reported
//     for an older generation is rejected, so a superseded load never lands.
package puzzle

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Phase is the coarse lifecycle state of a session.
type Phase string

const (
	PhaseIdle     Phase = "idle"     // nothing started, or reset
	PhaseLoading  Phase = "loading"  // grid known, waiting for the image size
	PhasePlaying  Phase = "playing"  // tiles built and scattered
	PhaseComplete Phase = "complete" // every tile placed; terminal until the next start
)

// Options tunes a session. Zero values are replaced by DefaultOptions.
type Options struct {
	SnapRatio    float64
	MaxRotation  float64
	TrayMargin   float64
	MinZoneWidth float64
	MaxPieces    int
	GhostOpacity float64
	Seed         int64 // 0 seeds from the wall clock
	FixedPieces  int   // when set, every start uses this piece count
}

// DefaultOptions mirrors the browser game's constants.
func DefaultOptions() Options {
	return Options{
		SnapRatio:    DefaultSnapRatio,
		MaxRotation:  10,
		TrayMargin:   10,
		MinZoneWidth: 10,
		MaxPieces:    1000,
		GhostOpacity: 0.35,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SnapRatio <= 0 {
		o.SnapRatio = d.SnapRatio
	}
	if o.MaxRotation < 0 {
		o.MaxRotation = 0
	}
	if o.MaxPieces <= 0 {
		o.MaxPieces = d.MaxPieces
	}
	if o.GhostOpacity <= 0 {
		o.GhostOpacity = d.GhostOpacity
	}
	return o
}

// StartRequest describes a new game. ImageSize may be nil when the page has
// not decoded the image yet; the session then waits in PhaseLoading.
type StartRequest struct {
	Image     string `json:"image"`
	Pieces    int    `json:"pieces"`
	Layout    Layout `json:"layout"`
	ImageSize *Size  `json:"imageSize,omitempty"`
}

// Result is reported once, when the last tile is placed.
type Result struct {
	Image          string `json:"image"`
	PieceCount     int    `json:"pieceCount"` // actual tiles
	Requested      int    `json:"requested"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
}

// DropOutcome tells the caller what a drop did.
type DropOutcome struct {
	TileID    int     `json:"tileId"`
	Placed    bool    `json:"placed"`
	Newly     bool    `json:"newly"`     // this drop placed the tile
	Completed bool    `json:"completed"` // this drop finished the puzzle
	Result    *Result `json:"result,omitempty"`
}

// Session is one play-through at a time.
type Session struct {
	opts    Options
	scatter Scatterer
	drag    *DragController

	phase   Phase
	gen     uint64
	last    *StartRequest // most recent accepted start, for Replay
	grid    Grid
	layout  Layout
	tsize   Size
	image   Size
	tiles   []Tile
	placed  int
	clock   time.Duration
	running bool
	ghost   bool
	result  *Result
}

// NewSession returns an idle session.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Session{
		opts: opts,
		scatter: Scatterer{
			Rand:         rand.New(rand.NewSource(seed)),
			Margin:       opts.TrayMargin,
			MinZoneWidth: opts.MinZoneWidth,
			MaxRotation:  opts.MaxRotation,
		},
		drag:  NewDragController(),
		phase: PhaseIdle,
	}
}

// Start resets the session and begins a new game. It returns the load token
// the caller passes to ImageLoaded when req.ImageSize is unknown.
func (s *Session) Start(req StartRequest) (uint64, error) {
	req.Image = strings.TrimSpace(req.Image)
	if req.Image == "" {
		return 0, fmt.Errorf("%w: missing image reference", ErrInvalidArgument)
	}
	if s.opts.FixedPieces > 0 {
		req.Pieces = s.opts.FixedPieces
	}
	if req.Pieces > s.opts.MaxPieces {
		return 0, fmt.Errorf("%w: at most %d pieces, got %d", ErrInvalidArgument, s.opts.MaxPieces, req.Pieces)
	}
	grid, err := Partition(req.Pieces)
	if err != nil {
		return 0, err
	}
	ts := TileSize(grid, req.Layout.BoardSize())
	if err := req.Layout.validate(ts); err != nil {
		return 0, err
	}
	var size Size
	if req.ImageSize != nil {
		size = *req.ImageSize
	}
	var tiles []Tile
	if !size.Empty() {
		if tiles, err = BuildTiles(grid, req.Layout.BoardSize(), size); err != nil {
			return 0, err
		}
	}

	s.clear()
	s.gen++
	s.last = &req
	s.grid, s.layout, s.tsize = grid, req.Layout, ts
	s.phase = PhaseLoading
	if tiles != nil {
		s.play(tiles, size)
	}
	return s.gen, nil
}

// ImageLoaded supplies the decoded pixel size for the start identified by token.
func (s *Session) ImageLoaded(token uint64, size Size) error {
	if token != s.gen || s.phase == PhaseIdle {
		return fmt.Errorf("%w: stale image load (token %d, current %d)", ErrNotReady, token, s.gen)
	}
	if s.phase != PhaseLoading {
		return fmt.Errorf("%w: image already loaded", ErrPrematureOperation)
	}
	if size.Empty() {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidArgument, size.Width, size.Height)
	}
	tiles, err := BuildTiles(s.grid, s.layout.BoardSize(), size)
	if err != nil {
		return err
	}
	s.play(tiles, size)
	return nil
}

func (s *Session) play(tiles []Tile, size Size) {
	s.image = size
	s.last.ImageSize = &Size{Width: size.Width, Height: size.Height}
	s.tiles = tiles
	s.scatter.Scatter(s.tiles, s.tsize, s.layout)
	s.phase = PhasePlaying
}

// Replay starts again with the previous image, piece count and layout.
func (s *Session) Replay() (uint64, error) {
	if s.last == nil {
		return 0, fmt.Errorf("%w: nothing to replay", ErrPrematureOperation)
	}
	req := *s.last
	return s.Start(req)
}

// Reset stops the clock and drops the game. Pending image loads become stale.
func (s *Session) Reset() {
	s.clear()
	s.gen++
	s.last = nil
	s.phase = PhaseIdle
}

func (s *Session) clear() {
	s.drag.Clear()
	s.grid, s.layout, s.tsize, s.image = Grid{}, Layout{}, Size{}, Size{}
	s.tiles = nil
	s.placed, s.clock = 0, 0
	s.running, s.ghost = false, false
	s.result = nil
}

// Shuffle re-scatters unplaced tiles. Drags in progress are abandoned.
func (s *Session) Shuffle() error {
	if err := s.requirePlaying(); err != nil {
		return err
	}
	s.drag.Clear()
	s.scatter.Scatter(s.tiles, s.tsize, s.layout)
	return nil
}

// PointerDown starts a drag. The first interaction starts the clock.
func (s *Session) PointerDown(p PointerID, tileID int, pos Point) error {
	if err := s.requirePlaying(); err != nil {
		return err
	}
	if err := s.drag.Down(s.tiles, p, tileID, pos); err != nil {
		return err
	}
	s.running = true
	return nil
}

// PointerMove follows the pointer with the tile it holds.
func (s *Session) PointerMove(p PointerID, pos Point) error {
	if err := s.requirePlaying(); err != nil {
		return err
	}
	return s.drag.Move(s.tiles, p, pos)
}

// PointerUp drops the tile held by p at pos.
func (s *Session) PointerUp(p PointerID, pos Point) (DropOutcome, error) {
	if err := s.requirePlaying(); err != nil {
		return DropOutcome{}, err
	}
	id, drop, err := s.drag.Up(s.tiles, p, pos)
	if err != nil {
		return DropOutcome{}, err
	}
	return s.evaluate(id, drop), nil
}

// PointerCancel drops the tile held by p where it last was.
func (s *Session) PointerCancel(p PointerID) (DropOutcome, error) {
	if err := s.requirePlaying(); err != nil {
		return DropOutcome{}, err
	}
	id, drop, err := s.drag.Cancel(s.tiles, p)
	if err != nil {
		return DropOutcome{}, err
	}
	return s.evaluate(id, drop), nil
}

// DropTile evaluates tileID dropped at pos without a pointer drag.
func (s *Session) DropTile(tileID int, pos Point) (DropOutcome, error) {
	if err := s.requirePlaying(); err != nil {
		return DropOutcome{}, err
	}
	if tileID < 0 || tileID >= len(s.tiles) {
		return DropOutcome{}, fmt.Errorf("%w: unknown tile %d", ErrInvalidArgument, tileID)
	}
	if s.drag.Dragging(tileID) {
		return DropOutcome{}, fmt.Errorf("%w: tile %d is being dragged", ErrInvalidArgument, tileID)
	}
	s.running = true
	return s.evaluate(tileID, pos), nil
}

func (s *Session) evaluate(id int, drop Point) DropOutcome {
	snap := Snapper{TileSize: s.tsize, Ratio: s.opts.SnapRatio}
	placed, newly := snap.Evaluate(&s.tiles[id], drop)
	out := DropOutcome{TileID: id, Placed: placed, Newly: newly}
	if newly {
		s.placed++
		if res, done := s.complete(); done {
			out.Completed = true
			out.Result = res
		}
	}
	return out
}

// complete transitions to PhaseComplete when the last tile is in.
func (s *Session) complete() (*Result, bool) {
	if s.phase != PhasePlaying || s.placed != len(s.tiles) {
		return nil, false
	}
	s.running = false
	s.phase = PhaseComplete
	s.drag.Clear()
	s.result = &Result{
		Image:          s.last.Image,
		PieceCount:     len(s.tiles),
		Requested:      s.grid.Requested,
		Rows:           s.grid.Rows,
		Cols:           s.grid.Cols,
		ElapsedSeconds: s.Elapsed(),
	}
	r := *s.result
	return &r, true
}

// CheckCompletion reports the final result once the puzzle is solved.
func (s *Session) CheckCompletion() (Result, bool) {
	if s.phase == PhasePlaying {
		s.complete()
	}
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Tick advances the clock by d while it runs. It reports whether anything
// changed.
func (s *Session) Tick(d time.Duration) bool {
	if !s.running || s.phase != PhasePlaying || d <= 0 {
		return false
	}
	s.clock += d
	return true
}

// ToggleGhost flips the reference image overlay and returns the new state.
func (s *Session) ToggleGhost() (bool, error) {
	if s.phase == PhaseIdle {
		return false, fmt.Errorf("%w: no game started", ErrPrematureOperation)
	}
	s.ghost = !s.ghost
	return s.ghost, nil
}

func (s *Session) requirePlaying() error {
	switch s.phase {
	case PhasePlaying:
		return nil
	case PhaseLoading:
		return fmt.Errorf("%w: waiting for image size", ErrNotReady)
	case PhaseComplete:
		return fmt.Errorf("%w: puzzle already complete", ErrPrematureOperation)
	default:
		return fmt.Errorf("%w: no game started", ErrPrematureOperation)
	}
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Grid returns the current grid (zero while idle).
func (s *Session) Grid() Grid { return s.grid }

// TileSize returns the per-tile pixel size.
func (s *Session) TileSize() Size { return s.tsize }

// PlacedCount returns the number of placed tiles.
func (s *Session) PlacedCount() int { return s.placed }

// Elapsed returns the clock in whole seconds.
func (s *Session) Elapsed() int { return int(s.clock / time.Second) }

// Running reports whether the clock is counting.
func (s *Session) Running() bool { return s.running }

// Generation returns the current load token.
func (s *Session) Generation() uint64 { return s.gen }

// Tile returns a copy of one tile.
func (s *Session) Tile(id int) (Tile, bool) {
	if id < 0 || id >= len(s.tiles) {
		return Tile{}, false
	}
	return s.tiles[id], true
}
