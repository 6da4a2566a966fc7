package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every PGNSIM_* override so Load sees only what the test sets.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PGNSIM_CONFIG", "PGNSIM_MOVE_INTERVAL", "PGNSIM_BOARDS",
		"PGNSIM_MAX_MOVES", "PGNSIM_OUTPUT_DIR", "PGNSIM_EVENT",
		"PGNSIM_SITE", "PGNSIM_ROUND_PREFIX", "PGNSIM_AUTO_RESTART",
		"PGNSIM_TOURNAMENT_FILE", "PGNSIM_SERVER_HOST",
		"PGNSIM_SERVER_PORT", "PGNSIM_WATCH_DIR",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MoveInterval != time.Second || cfg.Boards != 4 || cfg.MaxMoves != 200 {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.OutputDir != "pgn_output" || cfg.WatchDir != "pgn_output" {
		t.Fatalf("dir defaults = %q / %q", cfg.OutputDir, cfg.WatchDir)
	}
	if !cfg.AutoRestart || !cfg.TournamentFile {
		t.Fatalf("toggle defaults = %+v", cfg)
	}
	if cfg.ServerHost != "127.0.0.1" || cfg.ServerPort != 8000 {
		t.Fatalf("server defaults = %s:%d", cfg.ServerHost, cfg.ServerPort)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
move_interval: 250ms
boards: 2
max_moves: 40
output_dir: out
event: Spring Invitational
site: Somewhere
auto_restart: false
tournament_file: false
server_port: 9100
watch_dir: elsewhere
`)
	t.Setenv("PGNSIM_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MoveInterval != 250*time.Millisecond || cfg.Boards != 2 || cfg.MaxMoves != 40 {
		t.Fatalf("yaml values lost: %+v", cfg)
	}
	if cfg.Event != "Spring Invitational" || cfg.Site != "Somewhere" {
		t.Fatalf("labels = %q / %q", cfg.Event, cfg.Site)
	}
	if cfg.AutoRestart || cfg.TournamentFile {
		t.Fatalf("yaml toggles lost: %+v", cfg)
	}
	if cfg.ServerPort != 9100 || cfg.WatchDir != "elsewhere" {
		t.Fatalf("server values lost: %+v", cfg)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "boards: 2\nmove_interval: 1s\n")
	t.Setenv("PGNSIM_CONFIG", path)
	t.Setenv("PGNSIM_BOARDS", "7")
	t.Setenv("PGNSIM_MOVE_INTERVAL", "50ms")
	t.Setenv("PGNSIM_AUTO_RESTART", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Boards != 7 || cfg.MoveInterval != 50*time.Millisecond || cfg.AutoRestart {
		t.Fatalf("env overrides lost: %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PGNSIM_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PGNSIM_CONFIG", writeConfig(t, "move_interval: soon\n"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable move_interval")
	}
}

func TestValidate(t *testing.T) {
	base := func() *AppConfig {
		return &AppConfig{
			MoveInterval: time.Second,
			Boards:       1,
			MaxMoves:     10,
			OutputDir:    "out",
			Event:        "E",
			Site:         "S",
			RoundPrefix:  "Round",
			ServerHost:   "127.0.0.1",
			ServerPort:   8000,
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"zero interval", func(c *AppConfig) { c.MoveInterval = 0 }},
		{"zero boards", func(c *AppConfig) { c.Boards = 0 }},
		{"negative max moves", func(c *AppConfig) { c.MaxMoves = -1 }},
		{"empty output dir", func(c *AppConfig) { c.OutputDir = " " }},
		{"empty event", func(c *AppConfig) { c.Event = "" }},
		{"empty site", func(c *AppConfig) { c.Site = "" }},
		{"port too large", func(c *AppConfig) { c.ServerPort = 70000 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
