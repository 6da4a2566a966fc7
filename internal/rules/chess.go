package rules

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ChessEngine backs the oracle with the chess rules library.
type ChessEngine struct{}

func NewChessEngine() ChessEngine { return ChessEngine{} }

func (ChessEngine) NewBoard() Board {
	return &chessBoard{game: nchess.NewGame()}
}

// BoardFromFEN starts a board from an arbitrary position. Used by tests
// and diagnostic tooling; the simulator always starts from the initial
// position.
func (ChessEngine) BoardFromFEN(fen string) (Board, error) {
	opt, err := nchess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return &chessBoard{game: nchess.NewGame(opt)}, nil
}

type chessBoard struct {
	game *nchess.Game
}

func (b *chessBoard) LegalMoves() []Move {
	valid := b.game.ValidMoves()
	if len(valid) == 0 {
		return nil
	}
	pos := b.game.Position()
	notation := nchess.AlgebraicNotation{}
	out := make([]Move, 0, len(valid))
	for i := range valid {
		out = append(out, Move{
			UCI: valid[i].String(),
			SAN: notation.Encode(pos, &valid[i]),
		})
	}
	return out
}

func (b *chessBoard) Push(m Move) error {
	uci := strings.ToLower(strings.TrimSpace(m.UCI))
	mv, err := (nchess.UCINotation{}).Decode(b.game.Position(), uci)
	if err != nil {
		return fmt.Errorf("decode move %q: %w", m.UCI, err)
	}
	if err := b.game.Move(mv, nil); err != nil {
		return fmt.Errorf("apply move %q: %w", m.UCI, err)
	}
	return nil
}

func (b *chessBoard) Status() Status {
	var st Status
	if b.game.Outcome() == nchess.NoOutcome {
		return st
	}
	switch b.game.Method() {
	case nchess.Checkmate:
		st.Checkmate = true
		// The side to move after mate is the mated side.
		st.WhiteMates = b.game.Position().Turn() == nchess.Black
	case nchess.Stalemate:
		st.Stalemate = true
	case nchess.InsufficientMaterial:
		st.InsufficientMaterial = true
	case nchess.SeventyFiveMoveRule:
		st.SeventyFiveMoves = true
	case nchess.FivefoldRepetition:
		st.FivefoldRepetition = true
	}
	return st
}

func (b *chessBoard) FEN() string {
	return b.game.FEN()
}
