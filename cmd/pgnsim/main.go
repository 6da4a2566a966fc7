package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/config"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/rules"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/sim"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	obslog.L().Info("configuration loaded",
		zap.Int("boards", cfg.Boards),
		zap.Duration("move_interval", cfg.MoveInterval),
		zap.Int("max_moves", cfg.MaxMoves),
		zap.String("output_dir", cfg.OutputDir),
		zap.String("event", cfg.Event),
		zap.Bool("auto_restart", cfg.AutoRestart),
		zap.Bool("tournament_file", cfg.TournamentFile),
	)

	writer, err := pgn.NewWriter(cfg.OutputDir)
	if err != nil {
		log.Fatalf("writer init error: %v", err)
	}

	orch := sim.NewOrchestrator(cfg, rules.NewChessEngine(), writer)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		obslog.L().Info("shutdown signal received")
		cancel()
	}()

	if err := orch.Run(ctx); err != nil {
		obslog.L().Error("simulation error", zap.Error(err))
		os.Exit(1)
	}
}
