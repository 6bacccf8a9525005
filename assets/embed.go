// assets/embed.go
//
// Files compiled into the binary:
//   - sql/*.sql     schema migrations, applied in lexical order.
//   - puzzle.yaml   default configuration (used when no config file is found).
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed sql/*.sql puzzle.yaml
var FS embed.FS

// DefaultConfig returns the embedded default YAML configuration.
func DefaultConfig() []byte {
	b, err := FS.ReadFile("puzzle.yaml")
	if err != nil {
		return nil
	}
	return b
}

// Migration is one embedded schema script.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the embedded migrations sorted by file name.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(FS, "sql")
	if err != nil {
		return nil, err
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			continue
		}
		b, err := FS.ReadFile("sql/" + e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Migration{Name: e.Name(), SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
