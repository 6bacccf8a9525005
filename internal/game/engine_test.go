package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchesss/puzzle/internal/puzzle"
)

func solve(t *testing.T, s *puzzle.Session) {
	t.Helper()
	n := s.Grid().Count()
	for id := 0; id < n; id++ {
		tile, ok := s.Tile(id)
		require.True(t, ok)
		_, err := s.DropTile(id, tile.Target)
		require.NoError(t, err)
	}
}

func startSmall(t *testing.T, s *puzzle.Session) {
	t.Helper()
	_, err := s.Start(puzzle.StartRequest{
		Image:     "img/a.jpg",
		Pieces:    4,
		Layout:    puzzle.Layout{Board: puzzle.Rect{X: 200, Y: 0, W: 200, H: 200}, Viewport: puzzle.Rect{W: 600, H: 400}},
		ImageSize: &puzzle.Size{Width: 400, Height: 400},
	})
	require.NoError(t, err)
}

func TestNewGame(t *testing.T) {
	g := New("anon-1", "", puzzle.Options{Seed: 1})
	assert.NotEmpty(t, g.ID)
	assert.Equal(t, "anon-1", g.Owner)
	assert.WithinDuration(t, time.Now(), g.Touched(), time.Second)

	other := New("anon-1", "", puzzle.Options{Seed: 1})
	assert.NotEqual(t, g.ID, other.ID)

	g.Peek(func(s *puzzle.Session) {
		assert.Equal(t, puzzle.PhaseIdle, s.Phase())
	})
}

func TestTakeResultOncePerRound(t *testing.T) {
	g := New("u1", "u1", puzzle.Options{Seed: 7})

	require.NoError(t, g.Do(func(s *puzzle.Session) error {
		startSmall(t, s)
		_, ok := g.TakeResult(s)
		assert.False(t, ok, "nothing to record while playing")

		solve(t, s)
		res, ok := g.TakeResult(s)
		require.True(t, ok)
		assert.Equal(t, 4, res.PieceCount)

		_, ok = g.TakeResult(s)
		assert.False(t, ok, "second ask for the same round")
		return nil
	}))

	require.NoError(t, g.Do(func(s *puzzle.Session) error {
		_, err := s.Replay()
		require.NoError(t, err)
		solve(t, s)
		_, ok := g.TakeResult(s)
		assert.True(t, ok, "replayed round is recorded again")
		return nil
	}))
}
