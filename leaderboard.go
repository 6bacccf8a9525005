package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marchesss/puzzle/internal/config"
	"github.com/marchesss/puzzle/internal/daily"
	"github.com/marchesss/puzzle/internal/results"
)

var (
	flagLBPieces int
	flagLBDate   string
	flagLBLimit  int
	flagLBDaily  bool
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the fastest recorded finishes",
	Long: `Read the results database and print the fastest finishes.

Examples:
  puzzle leaderboard
  puzzle leaderboard --pieces 80
  puzzle leaderboard --date today --limit 5
  puzzle leaderboard --daily --date today`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&flagLBPieces, "pieces", 0, "Only this piece count (0 = all)")
	leaderboardCmd.Flags().StringVar(&flagLBDate, "date", "", "Only this day, YYYY-MM-DD or 'today'")
	leaderboardCmd.Flags().IntVar(&flagLBLimit, "limit", 10, "Number of rows")
	leaderboardCmd.Flags().BoolVar(&flagLBDaily, "daily", false, "Only daily challenge rounds")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := results.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	date := flagLBDate
	if date == "today" {
		date = daily.DateKey(time.Now())
	}
	rows, err := results.NewStore(db).Leaderboard(cmd.Context(), results.LBQuery{
		Pieces: flagLBPieces, Date: date, DailyOnly: flagLBDaily, Limit: flagLBLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(out, "No finished puzzles yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-8s  %s\n", "Rank", "Player", "Pieces", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-6s  %-8s  %s\n", "----", "------", "------", "----", "----")
	for _, r := range rows {
		name := r.Username
		if name == "" {
			name = "guest"
		}
		fmt.Fprintf(out, "  %-4d  %-16s  %-6d  %-8s  %s\n", r.Rank, name, r.PieceCount, formatSeconds(r.ElapsedSeconds), r.Date)
	}
	return nil
}

// formatSeconds renders m:ss (or h:mm:ss past an hour).
func formatSeconds(s int) string {
	if s >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
