// puzzle is the jigsaw puzzle game server.
//
// Usage:
//
//	puzzle serve                 - Start the HTTP + websocket server (default)
//	puzzle grid <n>...           - Print the grid chosen for each piece count
//	puzzle leaderboard           - Print the fastest recorded finishes
//
// Global flags:
//
//	--config <path>  - YAML config file (default search: ~/.puzzle, ./configs, embedded)
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/marchesss/puzzle/internal/config"
	"github.com/marchesss/puzzle/internal/httpserver"
	"github.com/marchesss/puzzle/internal/live"
	"github.com/marchesss/puzzle/internal/results"
	"github.com/marchesss/puzzle/internal/store"
)

var flagConfig string

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Jigsaw puzzle game server",
	Long: `Hosts jigsaw puzzle games for the browser client.

Each game is cut into a near-square grid, scattered around the board and
solved by dragging tiles into place. Finished games land on the leaderboard.

Examples:
  puzzle serve
  puzzle grid 30 50 80 97
  puzzle leaderboard --pieces 50 --date today`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and websocket server",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := results.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, store.NewMemoryStore(), results.NewStore(db), live.NewHub(cfg.Server.ClientOrigin))
	go srv.RunClock(ctx)

	hs := srv.HTTPServer(":" + cfg.Server.Port)
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("db", cfg.Database.Path).Msg("starting puzzle server")
		errc <- hs.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return hs.Shutdown(shutdownCtx)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
