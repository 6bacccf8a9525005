// internal/game/engine.go
//
// Lifecycle helpers around a hosted puzzle session.
// Responsibilities:
//   - Create games with a fresh uuid and an idle engine session.
//   - Serialize access to the session (Do) and track the last activity time.
//   - Hand out each round's completion result exactly once (TakeResult).
//
// Notes:
//   - A new round (start or replay) bumps the session generation, which is
//     what lets a replayed puzzle be recorded again.
package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/marchesss/puzzle/internal/puzzle"
)

// New constructs an idle game owned by owner.
func New(owner, userID string, opts puzzle.Options) *Game {
	now := time.Now()
	return &Game{
		ID:      uuid.NewString(),
		Owner:   owner,
		UserID:  userID,
		Created: now,
		session: puzzle.NewSession(opts),
		touched: now,
	}
}

// Do runs fn with exclusive access to the session.
func (g *Game) Do(fn func(s *puzzle.Session) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.touched = time.Now()
	return fn(g.session)
}

// Peek is Do without counting as activity. The idle sweep and the clock use it.
func (g *Game) Peek(fn func(s *puzzle.Session)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.session)
}

// Touched returns the time of the last Do.
func (g *Game) Touched() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.touched
}

// TakeResult returns the completion result of the current round the first
// time it is asked for, and false afterwards. Call it inside Do.
func (g *Game) TakeResult(s *puzzle.Session) (puzzle.Result, bool) {
	res, ok := s.CheckCompletion()
	if !ok || g.recorded == s.Generation() {
		return puzzle.Result{}, false
	}
	g.recorded = s.Generation()
	return res, true
}
