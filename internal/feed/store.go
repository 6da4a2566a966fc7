package feed

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
)

// Snapshot is an immutable read-side view of one board's record file.
// Snapshots are rebuilt from file content and swapped whole; nothing
// mutates one after it enters the store.
type Snapshot struct {
	Board    int
	Record   *pgn.Record
	Raw      []byte
	Version  uint64
	LoadedAt time.Time
}

// Finished reports whether the snapshot's game has a terminal result.
func (s *Snapshot) Finished() bool { return s.Record.Finished() }

// Store indexes the latest snapshot per board. Readers take a pointer
// under a read lock and keep using it after release; writers replace the
// pointer, so every handler sees a complete state, never a mix.
type Store struct {
	mu     sync.RWMutex
	boards map[int]*Snapshot
}

func NewStore() *Store {
	return &Store{boards: make(map[int]*Snapshot)}
}

// Get returns the current snapshot for a board.
func (st *Store) Get(board int) (*Snapshot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.boards[board]
	return s, ok
}

// Boards returns the known board numbers in ascending order.
func (st *Store) Boards() []int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]int, 0, len(st.boards))
	for b := range st.boards {
		out = append(out, b)
	}
	sort.Ints(out)
	return out
}

// Update parses raw file content and swaps in a new snapshot for the
// board. Content identical to the current snapshot keeps the version
// unchanged; a parse failure leaves the previous snapshot serving and is
// returned to the caller.
func (st *Store) Update(board int, raw []byte) (*Snapshot, error) {
	st.mu.RLock()
	prev := st.boards[board]
	st.mu.RUnlock()

	if prev != nil && bytes.Equal(prev.Raw, raw) {
		return prev, nil
	}

	rec, err := pgn.Parse(raw)
	if err != nil {
		return nil, err
	}

	next := &Snapshot{
		Board:    board,
		Record:   rec,
		Raw:      append([]byte(nil), raw...),
		Version:  1,
		LoadedAt: time.Now(),
	}

	st.mu.Lock()
	// Re-read under the write lock; another update may have landed.
	if cur := st.boards[board]; cur != nil {
		if bytes.Equal(cur.Raw, raw) {
			st.mu.Unlock()
			return cur, nil
		}
		next.Version = cur.Version + 1
	}
	st.boards[board] = next
	st.mu.Unlock()
	return next, nil
}
