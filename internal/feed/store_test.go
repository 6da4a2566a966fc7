package feed

import (
	"errors"
	"testing"
	"time"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
)

func boardRecord(board int, moves ...string) *pgn.Record {
	return &pgn.Record{
		Event:    "Test Open",
		Site:     "Testville",
		Date:     time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Round:    "Round 1",
		White:    "Player 1 White",
		Black:    "Player 1 Black",
		Board:    board,
		GameID:   1,
		Result:   pgn.ResultOngoing,
		MovesSAN: moves,
	}
}

func TestUpdateVersionsOnChangeOnly(t *testing.T) {
	st := NewStore()

	first := []byte(pgn.Render(boardRecord(1, "e4")))
	snap, err := st.Update(1, first)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if snap.Version != 1 {
		t.Fatalf("first version = %d, want 1", snap.Version)
	}

	same, err := st.Update(1, first)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if same.Version != 1 {
		t.Fatalf("unchanged content bumped version to %d", same.Version)
	}

	next, err := st.Update(1, []byte(pgn.Render(boardRecord(1, "e4", "e5"))))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if next.Version != 2 {
		t.Fatalf("changed content version = %d, want 2", next.Version)
	}
	if len(next.Record.MovesSAN) != 2 {
		t.Fatalf("snapshot moves = %v", next.Record.MovesSAN)
	}
}

func TestUpdateParseFailureKeepsPrevious(t *testing.T) {
	st := NewStore()

	good := []byte(pgn.Render(boardRecord(1, "e4")))
	if _, err := st.Update(1, good); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := st.Update(1, []byte("1. zz nonsense")); err == nil {
		t.Fatal("expected parse error")
	}

	snap, ok := st.Get(1)
	if !ok {
		t.Fatal("previous snapshot gone after failed update")
	}
	if snap.Version != 1 || len(snap.Record.MovesSAN) != 1 {
		t.Fatalf("previous snapshot replaced: %+v", snap)
	}
}

func TestUpdateEmptyFile(t *testing.T) {
	st := NewStore()
	if _, err := st.Update(1, []byte("\n")); !errors.Is(err, pgn.ErrEmptyRecord) {
		t.Fatalf("err = %v, want ErrEmptyRecord", err)
	}
}

func TestBoardsSorted(t *testing.T) {
	st := NewStore()
	for _, b := range []int{3, 1, 2} {
		if _, err := st.Update(b, []byte(pgn.Render(boardRecord(b)))); err != nil {
			t.Fatalf("Update(%d): %v", b, err)
		}
	}
	got := st.Boards()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Boards() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Boards() = %v, want %v", got, want)
		}
	}
}
