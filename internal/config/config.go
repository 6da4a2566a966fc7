package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// AppConfig holds every knob of the simulator and the feed server.
// All values are fixed at process start; there is no hot reload.
type AppConfig struct {
	MoveInterval time.Duration
	Boards       int
	MaxMoves     int
	OutputDir    string

	Event       string
	Site        string
	RoundPrefix string

	AutoRestart    bool
	TournamentFile bool

	ServerHost string
	ServerPort int
	WatchDir   string
}

// fileConfig mirrors the YAML document. Durations are strings so the file
// can say "500ms" or "2s".
type fileConfig struct {
	MoveInterval   string `yaml:"move_interval"`
	Boards         *int   `yaml:"boards"`
	MaxMoves       *int   `yaml:"max_moves"`
	OutputDir      string `yaml:"output_dir"`
	Event          string `yaml:"event"`
	Site           string `yaml:"site"`
	RoundPrefix    string `yaml:"round_prefix"`
	AutoRestart    *bool  `yaml:"auto_restart"`
	TournamentFile *bool  `yaml:"tournament_file"`
	ServerHost     string `yaml:"server_host"`
	ServerPort     *int   `yaml:"server_port"`
	WatchDir       string `yaml:"watch_dir"`
}

// Load builds the configuration from an optional YAML file (path taken from
// PGNSIM_CONFIG, default "config.yaml") with environment overrides applied
// on top. A config path set explicitly via PGNSIM_CONFIG must exist.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		MoveInterval:   time.Second,
		Boards:         4,
		MaxMoves:       200,
		OutputDir:      "pgn_output",
		Event:          "Simulated Tournament",
		Site:           "Local",
		RoundPrefix:    "Round",
		AutoRestart:    true,
		TournamentFile: true,
		ServerHost:     "127.0.0.1",
		ServerPort:     8000,
	}

	path := strings.TrimSpace(os.Getenv("PGNSIM_CONFIG"))
	explicit := path != ""
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := cfg.applyYAML(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.WatchDir) == "" {
		cfg.WatchDir = cfg.OutputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyYAML(raw []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return err
	}
	if strings.TrimSpace(fc.MoveInterval) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(fc.MoveInterval))
		if err != nil {
			return fmt.Errorf("move_interval: %w", err)
		}
		c.MoveInterval = d
	}
	if fc.Boards != nil {
		c.Boards = *fc.Boards
	}
	if fc.MaxMoves != nil {
		c.MaxMoves = *fc.MaxMoves
	}
	if s := strings.TrimSpace(fc.OutputDir); s != "" {
		c.OutputDir = s
	}
	if s := strings.TrimSpace(fc.Event); s != "" {
		c.Event = s
	}
	if s := strings.TrimSpace(fc.Site); s != "" {
		c.Site = s
	}
	if s := strings.TrimSpace(fc.RoundPrefix); s != "" {
		c.RoundPrefix = s
	}
	if fc.AutoRestart != nil {
		c.AutoRestart = *fc.AutoRestart
	}
	if fc.TournamentFile != nil {
		c.TournamentFile = *fc.TournamentFile
	}
	if s := strings.TrimSpace(fc.ServerHost); s != "" {
		c.ServerHost = s
	}
	if fc.ServerPort != nil {
		c.ServerPort = *fc.ServerPort
	}
	if s := strings.TrimSpace(fc.WatchDir); s != "" {
		c.WatchDir = s
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv("PGNSIM_MOVE_INTERVAL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PGNSIM_MOVE_INTERVAL: %w", err)
		}
		c.MoveInterval = d
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_BOARDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Boards = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_MAX_MOVES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxMoves = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_OUTPUT_DIR")); v != "" {
		c.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_EVENT")); v != "" {
		c.Event = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_SITE")); v != "" {
		c.Site = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_ROUND_PREFIX")); v != "" {
		c.RoundPrefix = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_AUTO_RESTART")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.AutoRestart = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_TOURNAMENT_FILE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.TournamentFile = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_SERVER_HOST")); v != "" {
		c.ServerHost = v
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_SERVER_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ServerPort = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("PGNSIM_WATCH_DIR")); v != "" {
		c.WatchDir = v
	}
	return nil
}

// Validate rejects configurations that would misbehave at runtime.
// Called before any board or server task starts.
func (c *AppConfig) Validate() error {
	if c.MoveInterval <= 0 {
		return errors.New("move_interval must be > 0")
	}
	if c.Boards <= 0 {
		return errors.New("boards must be > 0")
	}
	if c.MaxMoves <= 0 {
		return errors.New("max_moves must be > 0")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output_dir cannot be empty")
	}
	if strings.TrimSpace(c.Event) == "" {
		return errors.New("event cannot be empty")
	}
	if strings.TrimSpace(c.Site) == "" {
		return errors.New("site cannot be empty")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("server_port out of range: %d", c.ServerPort)
	}
	return nil
}
