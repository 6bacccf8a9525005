// internal/game/types.go
//
// Server-side record for one hosted puzzle.
// Defines:
//   - Game: a puzzle.Session plus the owner and bookkeeping the HTTP layer needs.

package game

import (
	"sync"
	"time"

	"github.com/marchesss/puzzle/internal/puzzle"
)

// Game wraps a single engine session. All access to Session goes through Do.
type Game struct {
	ID      string    // uuid
	Owner   string    // user id when signed in, otherwise the anonymous cookie id
	UserID  string    // empty for guests
	Daily   bool      // rounds count toward the daily challenge
	Created time.Time

	mu       sync.Mutex
	session  *puzzle.Session
	touched  time.Time
	recorded uint64 // generation whose result was already handed out
}
