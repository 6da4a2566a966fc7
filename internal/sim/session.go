package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HPduToit/PGN-Streaming-Simulator/internal/obslog"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/pgn"
	"github.com/HPduToit/PGN-Streaming-Simulator/internal/rules"
)

// Headers carries the fixed PGN header labels shared by every board.
type Headers struct {
	Event       string
	Site        string
	RoundPrefix string
}

// Progress is the outcome of one Advance call.
type Progress struct {
	MoveSAN  string
	Ply      int
	Finished bool
	Result   string
	Reason   string
}

// Session owns one board's live game: its rules-engine position, its
// record, and its termination state. Not safe for concurrent use; each
// board has exactly one driving goroutine.
type Session struct {
	id      string
	board   int
	gameIdx int

	pos      rules.Board
	rec      *pgn.Record
	maxMoves int
	rng      *rand.Rand

	done   bool
	reason string
}

// NewSession starts a fresh game on a board. gameIdx starts at 1 and
// increments on restart.
func NewSession(engine rules.Engine, board, gameIdx int, hdr Headers, maxMoves int, rng *rand.Rand) *Session {
	rec := &pgn.Record{
		Event:  hdr.Event,
		Site:   hdr.Site,
		Date:   time.Now(),
		Round:  fmt.Sprintf("%s %d", hdr.RoundPrefix, board),
		White:  fmt.Sprintf("Player %d White", board),
		Black:  fmt.Sprintf("Player %d Black", board),
		Board:  board,
		GameID: gameIdx,
		Result: pgn.ResultOngoing,
	}
	return &Session{
		id:       uuid.NewString(),
		board:    board,
		gameIdx:  gameIdx,
		pos:      engine.NewBoard(),
		rec:      rec,
		maxMoves: maxMoves,
		rng:      rng,
	}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) BoardIndex() int     { return s.board }
func (s *Session) GameIndex() int      { return s.gameIdx }
func (s *Session) Record() *pgn.Record { return s.rec }
func (s *Session) Done() bool          { return s.done }

// Advance plays one tick of the game: terminal conditions are checked in
// priority order before move selection; otherwise a uniformly random legal
// move is applied and appended to the record. When the applied move ends
// the game, the result is assigned in the same call.
func (s *Session) Advance() Progress {
	if s.done {
		return Progress{Finished: true, Ply: len(s.rec.MovesSAN), Result: s.rec.Result, Reason: s.reason}
	}

	if p, ok := s.checkTerminal(); ok {
		return p
	}

	legal := s.pos.LegalMoves()
	if len(legal) == 0 {
		// Oracle anomaly: nothing to play but no terminal flag raised.
		obslog.L().Warn("no legal moves without terminal status",
			zap.String("game_id", s.id),
			zap.Int("board", s.board),
			zap.String("fen", s.pos.FEN()),
		)
		return s.finish(pgn.ResultDraw, "no legal moves")
	}

	mv := legal[s.rng.IntN(len(legal))]
	if err := s.pos.Push(mv); err != nil {
		obslog.L().Warn("rules engine rejected its own move",
			zap.String("game_id", s.id),
			zap.Int("board", s.board),
			zap.String("uci", mv.UCI),
			zap.Error(err),
		)
		return s.finish(pgn.ResultDraw, "rules error")
	}
	s.rec.MovesSAN = append(s.rec.MovesSAN, mv.SAN)

	p := Progress{MoveSAN: mv.SAN, Ply: len(s.rec.MovesSAN)}
	if end, ok := s.checkTerminal(); ok {
		p.Finished = true
		p.Result = end.Result
		p.Reason = end.Reason
	}
	return p
}

// checkTerminal resolves terminal conditions in the documented priority
// order: checkmate, stalemate, insufficient material, 75-move rule,
// fivefold repetition, then the configured move ceiling. Natural terminal
// conditions always beat the ceiling.
func (s *Session) checkTerminal() (Progress, bool) {
	st := s.pos.Status()
	switch {
	case st.Checkmate:
		result := pgn.ResultBlackWins
		if st.WhiteMates {
			result = pgn.ResultWhiteWins
		}
		return s.finish(result, "checkmate"), true
	case st.Stalemate:
		return s.finish(pgn.ResultDraw, "stalemate"), true
	case st.InsufficientMaterial:
		return s.finish(pgn.ResultDraw, "insufficient material"), true
	case st.SeventyFiveMoves:
		return s.finish(pgn.ResultDraw, "75-move rule"), true
	case st.FivefoldRepetition:
		return s.finish(pgn.ResultDraw, "fivefold repetition"), true
	case len(s.rec.MovesSAN) >= s.maxMoves:
		return s.finish(pgn.ResultDraw, "max moves reached"), true
	}
	return Progress{}, false
}

// finish assigns the result exactly once; later calls are no-ops.
func (s *Session) finish(result, reason string) Progress {
	if !s.done {
		s.done = true
		s.reason = reason
		s.rec.Result = result
		s.rec.Termination = reason
	}
	return Progress{Finished: true, Ply: len(s.rec.MovesSAN), Result: s.rec.Result, Reason: s.reason}
}

// MoveLabel formats a ply as PGN-style move numbering for logs,
// e.g. "3." for white's third move and "3..." for black's reply.
func MoveLabel(ply int) string {
	num := (ply + 1) / 2
	if ply%2 == 1 {
		return fmt.Sprintf("%d.", num)
	}
	return fmt.Sprintf("%d...", num)
}
