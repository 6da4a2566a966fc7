package pgn

import (
	"strings"
	"testing"
	"time"
)

func testRecord() *Record {
	return &Record{
		Event:  "Test Open",
		Site:   "Testville",
		Date:   time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Round:  "Round 2",
		White:  "Player 2 White",
		Black:  "Player 2 Black",
		Board:  2,
		GameID: 1,
		Result: ResultOngoing,
		MovesSAN: []string{
			"e4", "e5", "Nf3", "Nc6", "Bb5",
		},
	}
}

func TestRenderHeadersAndMovetext(t *testing.T) {
	out := Render(testRecord())

	for _, want := range []string{
		"[Event \"Test Open\"]",
		"[Site \"Testville\"]",
		"[Date \"2026.03.14\"]",
		"[Round \"Round 2\"]",
		"[White \"Player 2 White\"]",
		"[Black \"Player 2 Black\"]",
		"[Board \"2\"]",
		"[Result \"*\"]",
		"1. e4 e5 2. Nf3 Nc6 3. Bb5 *",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered PGN missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "GameID") {
		t.Fatalf("GameID tag should be omitted for the first game:\n%s", out)
	}
	if strings.Contains(out, "Termination") {
		t.Fatalf("Termination tag should be omitted while running:\n%s", out)
	}
}

func TestRenderFinishedGameTags(t *testing.T) {
	r := testRecord()
	r.GameID = 3
	r.Result = ResultWhiteWins
	r.Termination = "Checkmate"
	out := Render(r)

	for _, want := range []string{
		"[GameID \"3\"]",
		"[Termination \"checkmate\"]",
		"[Result \"1-0\"]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered PGN missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "1-0") {
		t.Fatalf("movetext should end with the result token:\n%s", out)
	}
}

func TestRenderEmptyGame(t *testing.T) {
	r := testRecord()
	r.MovesSAN = nil
	out := Render(r)
	if !strings.Contains(out, "\n\n*") {
		t.Fatalf("empty game should render a bare result token:\n%s", out)
	}
}

func TestRenderSanitizesTagValues(t *testing.T) {
	r := testRecord()
	r.Event = `He said "go"`
	out := Render(r)
	if !strings.Contains(out, "[Event \"He said 'go'\"]") {
		t.Fatalf("quotes not sanitized:\n%s", out)
	}
}

func TestRenderWrapsLongMovetext(t *testing.T) {
	r := testRecord()
	r.MovesSAN = nil
	for i := 0; i < 60; i++ {
		r.MovesSAN = append(r.MovesSAN, "Nf3", "Nf6", "Ng1", "Ng8")
	}
	out := Render(r)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > exportLineWidth {
			t.Fatalf("line exceeds %d chars: %q", exportLineWidth, line)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	r := testRecord()
	out := Render(r)

	got, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Event != r.Event || got.Site != r.Site || got.Round != r.Round {
		t.Fatalf("headers mismatch: %+v", got)
	}
	if got.Board != 2 {
		t.Fatalf("board mismatch: %d", got.Board)
	}
	if got.Result != ResultOngoing {
		t.Fatalf("result mismatch: %q", got.Result)
	}
	if len(got.MovesSAN) != len(r.MovesSAN) {
		t.Fatalf("move count mismatch: got %d want %d", len(got.MovesSAN), len(r.MovesSAN))
	}
	for i := range r.MovesSAN {
		if got.MovesSAN[i] != r.MovesSAN[i] {
			t.Fatalf("move %d mismatch: got %q want %q", i, got.MovesSAN[i], r.MovesSAN[i])
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	if _, err := Parse([]byte("  \n ")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParseGarbage(t *testing.T) {
	if _, err := Parse([]byte("[Event \"x\"\n1. e9 zz")); err == nil {
		t.Fatal("expected error for malformed movetext")
	}
}
