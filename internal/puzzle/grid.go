// internal/puzzle/grid.go
//
// Grid partitioning: turn a requested piece count into rows × cols.
//
// Notes:
//   - Exact near-square factorizations are preferred (largest r <= sqrt(n)).
//   - Primes above 3 have no useful factor pair (1 × n is a single strip), so they
//     get an approximate rectangle with rows*cols > n. Callers read Count() for the
//     real number of tiles.
package puzzle

import (
	"fmt"
	"math"
)

// MaxPartition bounds Partition so the divisor search stays cheap.
const MaxPartition = 1 << 20

// Grid is the rows × cols split used for a session. Immutable once computed.
type Grid struct {
	Rows      int `json:"rows"`
	Cols      int `json:"cols"`
	Requested int `json:"requested"` // piece count the player asked for
}

// Count is the actual number of tiles.
func (g Grid) Count() int { return g.Rows * g.Cols }

// Exact reports whether the grid has exactly the requested number of tiles.
func (g Grid) Exact() bool { return g.Count() == g.Requested }

// Partition derives a near-square grid for n pieces with Rows <= Cols.
func Partition(n int) (Grid, error) {
	if n <= 0 {
		return Grid{}, fmt.Errorf("%w: piece count must be positive, got %d", ErrInvalidArgument, n)
	}
	if n > MaxPartition {
		return Grid{}, fmt.Errorf("%w: piece count above %d, got %d", ErrInvalidArgument, MaxPartition, n)
	}
	root := isqrt(n)
	for r := root; r >= 2; r-- {
		if n%r == 0 {
			return Grid{Rows: r, Cols: n / r, Requested: n}, nil
		}
	}
	if n <= 3 {
		return Grid{Rows: 1, Cols: n, Requested: n}, nil
	}
	// root >= 2 here since n >= 4.
	return Grid{Rows: root, Cols: (n + root - 1) / root, Requested: n}, nil
}

// isqrt returns floor(sqrt(n)) for 0 <= n <= MaxPartition. The float root is
// corrected in case it rounded either way.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
