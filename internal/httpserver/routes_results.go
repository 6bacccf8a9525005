// internal/httpserver/routes_results.go
//
// Read side of the results DB.
//   - GET /leaderboard → fastest finishes, filtered by ?pieces=, ?date= (YYYY-MM-DD or "today"), ?daily=true, ?limit=
//   - GET /stats/me    → per-piece-count totals for the signed-in user or the guest cookie
//   - GET /daily       → today's shared challenge (piece count + scatter seed)
//
// Results are written by the puzzle routes on completion, never here.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/marchesss/puzzle/internal/daily"
	"github.com/marchesss/puzzle/internal/results"
)

func (s *Server) mountResults(r chi.Router) {
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/stats/me", s.handleStats)
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.today())
}

func (s *Server) today() daily.Challenge {
	return daily.For(time.Now(), s.cfg.Game.DailySalt, s.cfg.Game.Levels)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pieces, err := optInt(q.Get("pieces"))
	if err != nil || pieces < 0 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "pieces must be a non-negative integer")
		return
	}
	limit, err := optInt(q.Get("limit"))
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "invalid_argument", "limit must be a non-negative integer")
		return
	}
	dailyOnly := q.Get("daily") == "true" || q.Get("daily") == "1"
	date := q.Get("date")
	switch date {
	case "":
	case "today":
		date = daily.DateKey(time.Now())
	default:
		if _, err := time.Parse("2006-01-02", date); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", "date must be YYYY-MM-DD")
			return
		}
	}

	rows, err := s.results.Leaderboard(r.Context(), results.LBQuery{
		Pieces: pieces, Date: date, DailyOnly: dailyOnly, Limit: limit,
	})
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pieces": pieces, "date": date, "daily": dailyOnly, "rows": rows})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var userID, anonID string
	if me := currentUser(r.Context()); me != nil {
		userID = me.ID
	} else if c, err := r.Cookie(anonCookieName); err == nil {
		anonID = c.Value
	}
	stats, err := s.results.Stats(r.Context(), userID, anonID)
	if err != nil {
		log.Error().Err(err).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guest": userID == "", "byPieces": stats})
}

func optInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
