// internal/daily/daily.go
//
// Daily challenge: one puzzle setup per UTC day, shared by every player.
// The piece count is picked from the configured levels and the scatter seed
// is fixed, so everyone starts from the same tray on the same day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Challenge is the setup for one day.
type Challenge struct {
	Date   string `json:"date"`
	Pieces int    `json:"pieces"`
	Seed   int64  `json:"seed"`
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// For derives the challenge of t's day from HMAC(salt, YYYY-MM-DD).
// With no levels Pieces is 0. Seed is never 0, which would mean "random".
func For(t time.Time, salt string, levels []int) Challenge {
	dk := DateKey(t)
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(dk))
	sum := h.Sum(nil)

	c := Challenge{Date: dk}
	if len(levels) > 0 {
		n := binary.BigEndian.Uint64(sum[:8])
		c.Pieces = levels[n%uint64(len(levels))]
	}
	c.Seed = int64(binary.BigEndian.Uint64(sum[8:16])&^(1<<63)) | 1
	return c
}
