package results

import (
	"context"
	"database/sql"
	"time"

	"github.com/marchesss/puzzle/internal/daily"
)

// Entry is one finished puzzle.
type Entry struct {
	GameID         string `json:"gameId"`
	UserID         string `json:"userId,omitempty"`
	AnonymousID    string `json:"-"`
	Image          string `json:"image"`
	PieceCount     int    `json:"pieceCount"`
	Requested      int    `json:"requested"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Date           string `json:"date"`
	Daily          bool   `json:"daily"`
}

// LBRow is a leaderboard line. Username is empty for guests.
type LBRow struct {
	Rank           int    `json:"rank"`
	Username       string `json:"username"`
	PieceCount     int    `json:"pieceCount"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	Image          string `json:"image"`
	Date           string `json:"date"`
	Daily          bool   `json:"daily"`
}

// LBQuery filters a leaderboard. Zero values mean no filter; Limit defaults
// to 20 and is capped at 100.
type LBQuery struct {
	Pieces    int
	Date      string
	DailyOnly bool
	Limit     int
}

// PieceStats summarizes one owner's results at one piece count.
type PieceStats struct {
	PieceCount   int `json:"pieceCount"`
	Completed    int `json:"completed"`
	BestSeconds  int `json:"bestSeconds"`
	TotalSeconds int `json:"totalSeconds"`
}

// Store reads and writes users and results.
type Store struct{ db *sql.DB }

// NewStore wraps an opened and migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a finished puzzle. An empty Date is filled with today's key.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	if e.Date == "" {
		e.Date = daily.DateKey(time.Now())
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO results
            (game_id, user_id, anonymous_id, image, piece_count, requested,
             grid_rows, grid_cols, elapsed_seconds, date, daily)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.GameID, nullable(e.UserID), nullable(e.AnonymousID), e.Image, e.PieceCount, e.Requested,
		e.Rows, e.Cols, e.ElapsedSeconds, e.Date, e.Daily,
	)
	return err
}

// Leaderboard returns the fastest results matching q.
func (s *Store) Leaderboard(ctx context.Context, q LBQuery) ([]LBRow, error) {
	pieces, date, limit := q.Pieces, q.Date, q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT COALESCE(u.username, ''), r.piece_count, r.elapsed_seconds, r.image, r.date, r.daily
        FROM results r
        LEFT JOIN users u ON u.id = r.user_id
        WHERE (? = 0 OR r.piece_count = ?)
          AND (? = '' OR r.date = ?)
          AND (? = 0 OR r.daily = 1)
        ORDER BY r.elapsed_seconds ASC, r.created_at ASC, r.id ASC
        LIMIT ?`, pieces, pieces, date, date, q.DailyOnly, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.PieceCount, &r.ElapsedSeconds, &r.Image, &r.Date, &r.Daily); err != nil {
			return nil, err
		}
		r.Rank = len(out) + 1
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats aggregates results per piece count for a signed-in user, or for an
// anonymous id when userID is empty.
func (s *Store) Stats(ctx context.Context, userID, anonymousID string) ([]PieceStats, error) {
	col, key := "user_id", userID
	if userID == "" {
		col, key = "anonymous_id", anonymousID
	}
	out := []PieceStats{}
	if key == "" {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT piece_count, COUNT(1), MIN(elapsed_seconds), SUM(elapsed_seconds)
        FROM results
        WHERE `+col+` = ?
        GROUP BY piece_count
        ORDER BY piece_count ASC`, key,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p PieceStats
		if err := rows.Scan(&p.PieceCount, &p.Completed, &p.BestSeconds, &p.TotalSeconds); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ClaimAnonymous attributes a guest's earlier results to a user who just signed up or in.
func (s *Store) ClaimAnonymous(ctx context.Context, anonymousID, userID string) (int64, error) {
	if anonymousID == "" || userID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE results SET user_id=? WHERE user_id IS NULL AND anonymous_id=?`, userID, anonymousID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
