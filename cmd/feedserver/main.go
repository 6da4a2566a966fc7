package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/config"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/feed"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
)

func main() {
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store := feed.NewStore()
	watcher := feed.NewWatcher(cfg.WatchDir, store)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		obslog.L().Info("shutdown signal received")
		cancel()
	}()

	watchDone := make(chan error, 1)
	go func() { watchDone <- watcher.Run(ctx) }()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler: feed.NewServer(store).Routes(),
	}
	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	obslog.L().Info("feed server listening",
		zap.String("addr", srv.Addr),
		zap.String("watch_dir", cfg.WatchDir),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		obslog.L().Error("server error", zap.Error(err))
		cancel()
		<-watchDone
		os.Exit(1)
	}

	if err := <-watchDone; err != nil {
		obslog.L().Error("watcher error", zap.Error(err))
		os.Exit(1)
	}
	obslog.L().Info("feed server stopped")
}
