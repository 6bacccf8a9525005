// internal/store/memory.go
//
// In-memory implementation of the Store interface for hosted puzzles.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each game carries its own lock (game.Game.Do) so one slow game does not
//     block the map.
//   - State is lost when the process restarts; only finished results are
//     persisted, by the results package.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/marchesss/puzzle/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Delete removes a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Each calls fn for every stored game, in ID order.
	Each(ctx context.Context, fn func(g *game.Game))

	// Sweep deletes games idle since before now-ttl and returns their IDs.
	Sweep(ctx context.Context, now time.Time, ttl time.Duration) []string
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

// Save stores g under its ID, replacing any previous entry.
func (m *memory) Save(ctx context.Context, g *game.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

// Get returns the game with id or ErrNotFound.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

// Delete removes id. Missing ids are not an error.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Each snapshots the map first so fn may take the game lock or call back into the store.
func (m *memory) Each(ctx context.Context, fn func(g *game.Game)) {
	for _, g := range m.list() {
		if ctx.Err() != nil {
			return
		}
		fn(g)
	}
}

// Sweep removes games untouched for longer than ttl and returns their ids.
func (m *memory) Sweep(ctx context.Context, now time.Time, ttl time.Duration) []string {
	var gone []string
	for _, g := range m.list() {
		if now.Sub(g.Touched()) > ttl {
			gone = append(gone, g.ID)
		}
	}
	if len(gone) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range gone {
		delete(m.games, id)
	}
	return gone
}

func (m *memory) list() []*game.Game {
	m.mu.RLock()
	out := make([]*game.Game, 0, len(m.games))
	for _, g := range m.games {
		out = append(out, g)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
