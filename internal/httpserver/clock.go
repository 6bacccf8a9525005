package httpserver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/marchesss/puzzle/internal/game"
	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/puzzle"
)

// tickPayload is pushed to watchers whenever a game's clock reaches a new second.
type tickPayload struct {
	ElapsedSeconds int `json:"elapsedSeconds"`
}

// RunClock advances every game's clock by the tick interval and evicts idle
// games until ctx is cancelled.
func (s *Server) RunClock(ctx context.Context) {
	interval := s.cfg.Game.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.tick(ctx, now, interval)
		}
	}
}

// tick advances running clocks by step and sweeps idle games.
func (s *Server) tick(ctx context.Context, now time.Time, step time.Duration) {
	s.store.Each(ctx, func(g *game.Game) {
		var (
			changed bool
			elapsed int
		)
		g.Peek(func(ses *puzzle.Session) {
			before := ses.Elapsed()
			if ses.Tick(step) {
				elapsed = ses.Elapsed()
				changed = elapsed != before
			}
		})
		if changed {
			s.hub.Broadcast(g.ID, live.OutMsg{T: "TICK", P: tickPayload{ElapsedSeconds: elapsed}})
		}
	})

	if ttl := s.cfg.Game.SessionTTL; ttl > 0 {
		for _, id := range s.store.Sweep(ctx, now, ttl) {
			s.hub.Drop(id)
			log.Info().Str("game", id).Msg("idle game evicted")
		}
	}
}
