package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
)

// rescanInterval bounds how stale the feed can get when a filesystem
// event is missed or a file was caught mid-rewrite.
const defaultRescanInterval = 2 * time.Second

// Watcher keeps the store in sync with the record files on disk. One
// background goroutine consumes change notifications, with a periodic
// rescan as fallback.
type Watcher struct {
	dir    string
	store  *Store
	rescan time.Duration
}

func NewWatcher(dir string, store *Store) *Watcher {
	return &Watcher{dir: dir, store: store, rescan: defaultRescanInterval}
}

// Run loads all existing record files, then watches the directory until
// ctx is cancelled. If the notification watcher cannot start, Run degrades
// to rescans alone.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create watch dir: %w", err)
	}
	w.loadAll()

	fw, err := fsnotify.NewWatcher()
	if err == nil {
		err = fw.Add(w.dir)
	}
	if err != nil {
		obslog.L().Warn("fs notifications unavailable, polling only", zap.Error(err))
		if fw != nil {
			fw.Close()
		}
		return w.pollLoop(ctx)
	}
	defer fw.Close()
	obslog.L().Info("watching record directory", zap.String("dir", w.dir))

	ticker := time.NewTicker(w.rescan)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return w.pollLoop(ctx)
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				w.reload(ev.Name)
			}
		case werr, ok := <-fw.Errors:
			if !ok {
				return w.pollLoop(ctx)
			}
			obslog.L().Warn("watch error", zap.Error(werr))
		case <-ticker.C:
			w.loadAll()
		}
	}
}

func (w *Watcher) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.rescan)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.loadAll()
		}
	}
}

func (w *Watcher) loadAll() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		obslog.L().Warn("read watch dir", zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		w.reload(filepath.Join(w.dir, e.Name()))
	}
}

// reload re-parses one record file into the store. Failures keep the
// previous snapshot; the rescan ticker retries until the writer has
// replaced the file with a complete record.
func (w *Watcher) reload(path string) {
	board, ok := boardIndexFromName(filepath.Base(path))
	if !ok {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			obslog.L().Warn("read record file", zap.String("file", path), zap.Error(err))
		}
		return
	}
	if _, err := w.store.Update(board, raw); err != nil {
		if errors.Is(err, pgn.ErrEmptyRecord) {
			return
		}
		obslog.L().Debug("record not parseable yet, keeping previous snapshot",
			zap.String("file", path), zap.Error(err))
	}
}

// boardIndexFromName extracts N from "board_N.pgn". Anything else,
// including writer temp files, is ignored.
func boardIndexFromName(name string) (int, bool) {
	if !strings.HasPrefix(name, "board_") || !strings.HasSuffix(name, ".pgn") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "board_"), ".pgn"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
