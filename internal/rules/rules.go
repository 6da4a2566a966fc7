// Package rules is the legality and terminal-state oracle boundary.
// The simulator only talks to the Engine/Board interfaces, so any
// conformant rules implementation can back it.
package rules

// Move is one legal move carried in both notations. UCI identifies the
// move for the rules engine; SAN is what ends up in the record.
type Move struct {
	UCI string
	SAN string
}

// Status reports the terminal conditions of a position as independent
// flags. More than one may be true for synthetic positions; callers apply
// their own precedence.
type Status struct {
	Checkmate            bool
	WhiteMates           bool // meaningful only with Checkmate
	Stalemate            bool
	InsufficientMaterial bool
	SeventyFiveMoves     bool
	FivefoldRepetition   bool
}

// Terminal reports whether any terminal condition holds.
func (s Status) Terminal() bool {
	return s.Checkmate || s.Stalemate || s.InsufficientMaterial ||
		s.SeventyFiveMoves || s.FivefoldRepetition
}

// Board is one game's evolving position.
type Board interface {
	// LegalMoves returns every legal move in the current position.
	LegalMoves() []Move
	// Push applies a move previously returned by LegalMoves.
	Push(Move) error
	// Status reports terminal conditions for the current position.
	Status() Status
	// FEN renders the current position.
	FEN() string
}

// Engine creates boards.
type Engine interface {
	NewBoard() Board
	BoardFromFEN(fen string) (Board, error)
}
