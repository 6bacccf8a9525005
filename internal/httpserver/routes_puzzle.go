// internal/httpserver/routes_puzzle.go
//
// Puzzle endpoints. Every game is one engine session held in the store.
//   - POST /puzzle/new        → create a game (and optionally start it, daily or free)
//   - GET  /puzzle/{id}       → current snapshot
//   - POST /puzzle/{id}/{op}  → start | image | shuffle | pointer | drop | reset | replay | ghost
//
// The same ops are reachable over the websocket (see routes_live.go). After
// each successful op the new snapshot is broadcast to every watcher, and a
// finished round is written to the results DB exactly once.

package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/marchesss/puzzle/internal/game"
	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/puzzle"
	"github.com/marchesss/puzzle/internal/results"
)

// actionRes is the reply to an op. Snapshot is left out of websocket replies
// because the broadcast already carries it.
type actionRes struct {
	Outcome   *puzzle.DropOutcome `json:"outcome,omitempty"`
	LoadToken uint64              `json:"loadToken,omitempty"`
	Ghost     *bool               `json:"ghost,omitempty"`
	Snapshot  *puzzle.Snapshot    `json:"snapshot,omitempty"`
}

// op runs against a locked session. body is the raw JSON payload (may be empty).
type op func(ses *puzzle.Session, body json.RawMessage, out *actionRes) error

var ops = map[string]op{
	"start":   opStart,
	"image":   opImage,
	"shuffle": opShuffle,
	"pointer": opPointer,
	"drop":    opDrop,
	"reset":   opReset,
	"replay":  opReplay,
	"ghost":   opGhost,
}

type newGameReq struct {
	puzzle.StartRequest
	Daily bool `json:"daily"` // use today's shared piece count and scatter seed
}

type newGameRes struct {
	GameID    string          `json:"gameId"`
	LoadToken uint64          `json:"loadToken"`
	Snapshot  puzzle.Snapshot `json:"snapshot"`
}

type imageReq struct {
	LoadToken uint64 `json:"loadToken"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type pointerReq struct {
	Kind    string  `json:"kind"` // down | move | up | cancel
	Pointer int     `json:"pointer"`
	TileID  int     `json:"tileId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type dropReq struct {
	TileID int     `json:"tileId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) mountPuzzle(r chi.Router) {
	r.Post("/puzzle/new", s.handleNewGame)
	r.Get("/puzzle/{id}", s.handleGetGame)
	r.Post("/puzzle/{id}/{op}", s.handleOp)
}

// handleNewGame creates a game owned by the caller. With an image in the body
// it is started right away; a failed start creates nothing.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	owner, userID := s.owner(w, r)
	opts := s.cfg.Game.Options()
	if req.Daily {
		ch := s.today()
		opts.Seed = ch.Seed
		opts.FixedPieces = ch.Pieces
		req.Pieces = ch.Pieces
	}
	g := game.New(owner, userID, opts)
	g.Daily = req.Daily

	var res newGameRes
	err := g.Do(func(ses *puzzle.Session) error {
		if strings.TrimSpace(req.Image) != "" {
			if req.Pieces == 0 {
				req.Pieces = s.cfg.Game.DefaultPieces
			}
			tok, err := ses.Start(req.StartRequest)
			if err != nil {
				return err
			}
			res.LoadToken = tok
		}
		res.Snapshot = ses.Snapshot()
		return nil
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	res.GameID = g.ID
	log.Info().Str("game", g.ID).Int("pieces", req.Pieces).Bool("guest", userID == "").Msg("game created")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	var snap puzzle.Snapshot
	g.Peek(func(ses *puzzle.Session) { snap = ses.Snapshot() })
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleOp(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "op")
	fn, ok := ops[name]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "unknown op "+name)
		return
	}
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if !s.owns(r, g) {
		writeErr(w, errForbidden)
		return
	}
	var body json.RawMessage
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	out, err := s.apply(r.Context(), g, fn, body)
	if err != nil {
		log.Warn().Err(err).Str("game", g.ID).Str("op", name).Msg("puzzle op rejected")
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// apply runs fn under the game lock, records a finished round and broadcasts
// the new snapshot.
func (s *Server) apply(ctx context.Context, g *game.Game, fn op, body json.RawMessage) (actionRes, error) {
	var (
		out      actionRes
		res      puzzle.Result
		finished bool
	)
	err := g.Do(func(ses *puzzle.Session) error {
		if err := fn(ses, body, &out); err != nil {
			return err
		}
		res, finished = g.TakeResult(ses)
		snap := ses.Snapshot()
		out.Snapshot = &snap
		return nil
	})
	if err != nil {
		return actionRes{}, err
	}
	if finished {
		s.record(context.WithoutCancel(ctx), g, res)
	}
	s.hub.Broadcast(g.ID, live.OutMsg{T: "SNAPSHOT", P: out.Snapshot})
	return out, nil
}

func (s *Server) record(ctx context.Context, g *game.Game, res puzzle.Result) {
	e := results.Entry{
		GameID:         g.ID,
		UserID:         g.UserID,
		Image:          res.Image,
		PieceCount:     res.PieceCount,
		Requested:      res.Requested,
		Rows:           res.Rows,
		Cols:           res.Cols,
		ElapsedSeconds: res.ElapsedSeconds,
		Daily:          g.Daily,
	}
	if g.UserID == "" {
		e.AnonymousID = g.Owner
	}
	if err := s.results.Insert(ctx, e); err != nil {
		log.Error().Err(err).Str("game", g.ID).Msg("record result")
		return
	}
	log.Info().Str("game", g.ID).Int("pieces", res.PieceCount).Int("seconds", res.ElapsedSeconds).Msg("puzzle complete")
}

// owner returns the id that owns games created by this request.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (owner, userID string) {
	if me := currentUser(r.Context()); me != nil {
		return me.ID, me.ID
	}
	return s.ensureAnonID(w, r), ""
}

// owns accepts either the signed-in user or the guest cookie that created g.
func (s *Server) owns(r *http.Request, g *game.Game) bool {
	if me := currentUser(r.Context()); me != nil && me.ID == g.Owner {
		return true
	}
	c, err := r.Cookie(anonCookieName)
	return err == nil && c.Value != "" && c.Value == g.Owner
}

// ------------------------------- ops ---------------------------------------

func decodeOp(body json.RawMessage, v any) error {
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: bad payload: %v", puzzle.ErrInvalidArgument, err)
	}
	return nil
}

func opStart(ses *puzzle.Session, body json.RawMessage, out *actionRes) error {
	var req puzzle.StartRequest
	if err := decodeOp(body, &req); err != nil {
		return err
	}
	tok, err := ses.Start(req)
	out.LoadToken = tok
	return err
}

func opImage(ses *puzzle.Session, body json.RawMessage, out *actionRes) error {
	var req imageReq
	if err := decodeOp(body, &req); err != nil {
		return err
	}
	return ses.ImageLoaded(req.LoadToken, puzzle.Size{Width: req.Width, Height: req.Height})
}

func opShuffle(ses *puzzle.Session, _ json.RawMessage, _ *actionRes) error {
	return ses.Shuffle()
}

func opReset(ses *puzzle.Session, _ json.RawMessage, _ *actionRes) error {
	ses.Reset()
	return nil
}

func opReplay(ses *puzzle.Session, _ json.RawMessage, out *actionRes) error {
	tok, err := ses.Replay()
	out.LoadToken = tok
	return err
}

func opGhost(ses *puzzle.Session, _ json.RawMessage, out *actionRes) error {
	on, err := ses.ToggleGhost()
	if err != nil {
		return err
	}
	out.Ghost = &on
	return nil
}

func opPointer(ses *puzzle.Session, body json.RawMessage, out *actionRes) error {
	var req pointerReq
	if err := decodeOp(body, &req); err != nil {
		return err
	}
	p := puzzle.PointerID(req.Pointer)
	pos := puzzle.Point{X: req.X, Y: req.Y}
	var (
		o   puzzle.DropOutcome
		err error
	)
	switch req.Kind {
	case "down":
		return ses.PointerDown(p, req.TileID, pos)
	case "move":
		return ses.PointerMove(p, pos)
	case "up":
		o, err = ses.PointerUp(p, pos)
	case "cancel":
		o, err = ses.PointerCancel(p)
	default:
		return fmt.Errorf("%w: unknown pointer kind %q", puzzle.ErrInvalidArgument, req.Kind)
	}
	if err != nil {
		return err
	}
	out.Outcome = &o
	return nil
}

func opDrop(ses *puzzle.Session, body json.RawMessage, out *actionRes) error {
	var req dropReq
	if err := decodeOp(body, &req); err != nil {
		return err
	}
	o, err := ses.DropTile(req.TileID, puzzle.Point{X: req.X, Y: req.Y})
	if err != nil {
		return err
	}
	out.Outcome = &o
	return nil
}
