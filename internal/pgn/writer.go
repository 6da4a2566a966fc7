package pgn

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Writer persists rendered records under one output directory. Each board
// file has a single writer; the tournament archive is shared, so appends
// go through the writer's mutex and never interleave.
type Writer struct {
	dir     string
	archive string

	mu sync.Mutex
}

const archiveFileName = "tournament.pgn"

// NewWriter ensures the output directory exists and returns a writer for it.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{
		dir:     dir,
		archive: filepath.Join(dir, archiveFileName),
	}, nil
}

// BoardPath returns the record file path for a board.
func (w *Writer) BoardPath(board int) string {
	return filepath.Join(w.dir, fmt.Sprintf("board_%d.pgn", board))
}

// Flush replaces a board's record file with text. The write goes to a temp
// file in the same directory followed by a rename, so concurrent readers
// observe either the previous or the new complete file, never a partial one.
func (w *Writer) Flush(board int, text string) error {
	tmp, err := os.CreateTemp(w.dir, fmt.Sprintf("board_%d_*.tmp", board))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, w.BoardPath(board)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace board file: %w", err)
	}
	return nil
}

// AppendArchive appends one complete record block to the tournament file.
// Serialized across boards so records from concurrent completions land in
// completion order as whole blocks.
func (w *Writer) AppendArchive(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.archive, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("append archive: %w", err)
	}
	return nil
}

// ArchivePath returns the tournament archive file path.
func (w *Writer) ArchivePath() string { return w.archive }
