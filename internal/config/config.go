package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Server holds the HTTP server settings. Durations are plain seconds in
// the file.
type Server struct {
	Address      string `yaml:"address"`
	DatabasePath string `yaml:"database_path"`
	CatalogPath  string `yaml:"catalog_path"`

	// Sessions idle for longer than this are abandoned.
	SessionIdleTimeout int `yaml:"session_idle_timeout"` // seconds
	// How often the sweeper looks for idle sessions.
	SweepInterval int `yaml:"sweep_interval"` // seconds
	// Lifetime of the session cookie issued after login.
	SessionTTL int `yaml:"session_ttl"` // seconds

	LeaderboardSize int `yaml:"leaderboard_size"`
	HistorySize     int `yaml:"history_size"`

	// Extra origins allowed to open the event stream, e.g.
	// "https://arena.example.com". Same-host origins are always allowed.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		Address:            ":8080",
		DatabasePath:       "./data/pocket-arena.db",
		CatalogPath:        "./data/catalog.yaml",
		SessionIdleTimeout: 900,
		SweepInterval:      30,
		SessionTTL:         7 * 24 * 3600,
		LeaderboardSize:    20,
		HistorySize:        50,
	}
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the server can't run with.
func (s Server) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("address is empty")
	}
	if strings.TrimSpace(s.CatalogPath) == "" {
		return fmt.Errorf("catalog_path is empty")
	}
	if s.SessionIdleTimeout <= 0 {
		return fmt.Errorf("session_idle_timeout must be positive, got %d", s.SessionIdleTimeout)
	}
	if s.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %d", s.SweepInterval)
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive, got %d", s.SessionTTL)
	}
	if s.LeaderboardSize <= 0 || s.HistorySize <= 0 {
		return fmt.Errorf("leaderboard_size and history_size must be positive")
	}
	return nil
}

// AllowsOrigin reports whether origin is on the allow-list. Matching
// ignores case and a trailing slash.
func (s Server) AllowsOrigin(origin string) bool {
	origin = strings.TrimSuffix(origin, "/")
	for _, o := range s.AllowedOrigins {
		if strings.EqualFold(strings.TrimSuffix(o, "/"), origin) {
			return true
		}
	}
	return false
}

func (s Server) IdleTimeout() time.Duration { return time.Duration(s.SessionIdleTimeout) * time.Second }

func (s Server) Sweep() time.Duration { return time.Duration(s.SweepInterval) * time.Second }

func (s Server) CookieTTL() time.Duration { return time.Duration(s.SessionTTL) * time.Second }
