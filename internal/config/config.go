// internal/config/config.go
//
// Server configuration.
//
// Load search order (first hit wins):
//   1. explicit path (--config flag)
//   2. ~/.puzzle/puzzle.yaml
//   3. ./configs/puzzle.yaml
//   4. embedded assets/puzzle.yaml
//
// Environment variables are applied on top of whichever file was used:
//   PORT, CLIENT_ORIGIN, DB_PATH, JWT_SECRET, JWT_EXPIRES_DAYS, COOKIE_NAME, DAILY_SALT
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/marchesss/puzzle/assets"
	"github.com/marchesss/puzzle/internal/puzzle"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Game     GameConfig     `yaml:"game"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Port           string        `yaml:"port"`
	ClientOrigin   string        `yaml:"client_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DatabaseConfig locates the SQLite results database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// AuthConfig holds JWT signing and cookie settings.
type AuthConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	JWTExpiresDays int    `yaml:"jwt_expires_days"`
	CookieName     string `yaml:"cookie_name"`
}

// GameConfig holds the engine tunables and the server-side game lifecycle.
type GameConfig struct {
	Levels        []int         `yaml:"levels"`
	DefaultPieces int           `yaml:"default_pieces"`
	MaxPieces     int           `yaml:"max_pieces"`
	SnapRatio     float64       `yaml:"snap_ratio"`
	MaxRotation   float64       `yaml:"max_rotation"`
	TrayMargin    float64       `yaml:"tray_margin"`
	MinZoneWidth  float64       `yaml:"min_zone_width"`
	GhostOpacity  float64       `yaml:"ghost_opacity"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	DailySalt     string        `yaml:"daily_salt"`
}

// Default returns the built-in configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           "5175",
			ClientOrigin:   "http://localhost:5173",
			RequestTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{Path: "./data/puzzle.db"},
		Auth: AuthConfig{
			JWTSecret:      "dev_secret_change_me",
			JWTExpiresDays: 14,
			CookieName:     "puzzle_token",
		},
		Game: GameConfig{
			Levels:        []int{30, 50, 80},
			DefaultPieces: 50,
			MaxPieces:     400,
			SnapRatio:     puzzle.DefaultSnapRatio,
			MaxRotation:   10,
			TrayMargin:    10,
			MinZoneWidth:  10,
			GhostOpacity:  0.35,
			TickInterval:  time.Second,
			SessionTTL:    2 * time.Hour,
			DailySalt:     "local_dev_salt",
		},
	}
}

// Load reads the configuration following the search order above, applies
// environment overrides and validates the result.
func Load(customPath string) (Config, error) {
	cfg := Default()

	data, err := readFirst(customPath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if customPath != "" {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg = Default()
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func readFirst(customPath string) ([]byte, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return data, nil
	}
	if p := userConfigPath("puzzle.yaml"); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	if data, err := os.ReadFile(filepath.Join("configs", "puzzle.yaml")); err == nil {
		return data, nil
	}
	return assets.DefaultConfig(), nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".puzzle", filename)
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		c.Server.ClientOrigin = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("DAILY_SALT"); v != "" {
		c.Game.DailySalt = v
	}
	if v := os.Getenv("COOKIE_NAME"); v != "" {
		c.Auth.CookieName = v
	}
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRES_DAYS: %w", err)
		}
		c.Auth.JWTExpiresDays = n
	}
	return nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is empty"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is empty"))
	}
	if c.Auth.JWTExpiresDays <= 0 {
		errs = append(errs, errors.New("auth.jwt_expires_days must be positive"))
	}
	g := c.Game
	if g.MaxPieces < 1 || g.MaxPieces > puzzle.MaxPartition {
		errs = append(errs, fmt.Errorf("game.max_pieces must be in 1..%d", puzzle.MaxPartition))
	}
	if g.DefaultPieces < 1 || g.DefaultPieces > g.MaxPieces {
		errs = append(errs, fmt.Errorf("game.default_pieces must be in 1..%d", g.MaxPieces))
	}
	for _, n := range g.Levels {
		if n < 1 || n > g.MaxPieces {
			errs = append(errs, fmt.Errorf("game.levels: %d out of range 1..%d", n, g.MaxPieces))
		}
	}
	if g.SnapRatio <= 0 || g.SnapRatio > 1 {
		errs = append(errs, errors.New("game.snap_ratio must be in (0, 1]"))
	}
	if g.TickInterval <= 0 {
		errs = append(errs, errors.New("game.tick_interval must be positive"))
	}
	if g.SessionTTL <= 0 {
		errs = append(errs, errors.New("game.session_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// Options converts the game section into engine options.
func (g GameConfig) Options() puzzle.Options {
	return puzzle.Options{
		SnapRatio:    g.SnapRatio,
		MaxRotation:  g.MaxRotation,
		TrayMargin:   g.TrayMargin,
		MinZoneWidth: g.MinZoneWidth,
		MaxPieces:    g.MaxPieces,
		GhostOpacity: g.GhostOpacity,
	}
}
