package pgn

import (
	"time"
)

// Result tokens as they appear in the PGN Result tag and movetext.
const (
	ResultOngoing   = "*"
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
)

// Record is one game's header metadata plus its SAN move history.
// The move list is append-only while the game runs; Result stays "*"
// until a terminal condition fires.
type Record struct {
	Event       string
	Site        string
	Date        time.Time
	Round       string
	White       string
	Black       string
	Board       int
	GameID      int
	Termination string
	Result      string

	MovesSAN []string
}

// Finished reports whether the record carries a terminal result.
func (r *Record) Finished() bool {
	return r != nil && r.Result != "" && r.Result != ResultOngoing
}
