package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marchesss/puzzle/internal/puzzle"
)

var gridCmd = &cobra.Command{
	Use:   "grid <n>...",
	Short: "Print the grid chosen for each piece count",
	Long: `Print rows x cols for each requested piece count. Counts with no
divisor up to their square root get an approximate grid with a few extra tiles.

Examples:
  puzzle grid 50
  puzzle grid 7 30 97`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrid,
}

func runGrid(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-6s  %-8s  %s\n", "Pieces", "Grid", "Tiles")
	fmt.Fprintf(out, "  %-6s  %-8s  %s\n", "------", "----", "-----")
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("%q is not a number", a)
		}
		g, err := puzzle.Partition(n)
		if err != nil {
			return err
		}
		note := ""
		if !g.Exact() {
			note = " (approx)"
		}
		fmt.Fprintf(out, "  %-6d  %-8s  %d%s\n", n, fmt.Sprintf("%dx%d", g.Rows, g.Cols), g.Count(), note)
	}
	return nil
}
