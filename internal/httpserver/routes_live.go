package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/puzzle"
)

// handleLive attaches a websocket to a game. Anyone may watch; only the owner
// may send ops. Frame types are the op names in upper case (START, POINTER,
// DROP, ...) plus SNAPSHOT to ask for the current state.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	owner := s.owns(r, g)
	ctx := context.WithoutCancel(r.Context())

	handle := func(in live.InMsg) live.OutMsg {
		name := strings.ToLower(in.T)
		if name == "snapshot" {
			var snap puzzle.Snapshot
			g.Peek(func(ses *puzzle.Session) { snap = ses.Snapshot() })
			return live.OutMsg{T: "SNAPSHOT", P: snap}
		}
		fn, ok := ops[name]
		if !ok {
			return live.Error(in.ReqID, "UNKNOWN_TYPE", "unknown message type: "+in.T)
		}
		if !owner {
			_, code := classify(errForbidden)
			return live.Error(in.ReqID, strings.ToUpper(code), errForbidden.Error())
		}
		out, err := s.apply(ctx, g, fn, in.P)
		if err != nil {
			_, code := classify(err)
			return live.Error(in.ReqID, strings.ToUpper(code), err.Error())
		}
		out.Snapshot = nil
		return live.OutMsg{T: "OK", P: out}
	}

	if err := s.hub.Serve(w, r, g.ID, handle); err != nil {
		log.Warn().Err(err).Str("game", g.ID).Msg("ws upgrade")
	}
}
