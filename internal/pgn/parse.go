package pgn

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ErrEmptyRecord marks a file with no content yet.
var ErrEmptyRecord = errors.New("empty pgn record")

// Parse reads a full PGN document back into a Record. The movetext is
// validated and normalized through the rules library, so a file caught in
// a broken state surfaces as an error instead of a half-parsed record.
func Parse(raw []byte) (*Record, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyRecord
	}

	opt, err := nchess.PGN(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse pgn: %w", err)
	}
	game := nchess.NewGame(opt)

	rec := &Record{Result: ResultOngoing}
	parseTags(rec, raw)

	moves := game.Moves()
	positions := game.Positions()
	notation := nchess.AlgebraicNotation{}
	rec.MovesSAN = make([]string, 0, len(moves))
	for i, mv := range moves {
		if i < len(positions) {
			rec.MovesSAN = append(rec.MovesSAN, notation.Encode(positions[i], mv))
		}
	}
	return rec, nil
}

// parseTags fills header fields from the tag-pair section. Unknown tags are
// ignored; malformed lines are skipped rather than failing the parse.
func parseTags(rec *Record, raw []byte) {
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}
		body := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
		sep := strings.IndexByte(body, ' ')
		if sep <= 0 {
			continue
		}
		key := body[:sep]
		val := strings.Trim(strings.TrimSpace(body[sep+1:]), "\"")
		switch key {
		case "Event":
			rec.Event = val
		case "Site":
			rec.Site = val
		case "Round":
			rec.Round = val
		case "White":
			rec.White = val
		case "Black":
			rec.Black = val
		case "Result":
			if val != "" {
				rec.Result = val
			}
		case "Termination":
			rec.Termination = val
		case "Board":
			if n, err := strconv.Atoi(val); err == nil {
				rec.Board = n
			}
		case "GameID":
			if n, err := strconv.Atoi(val); err == nil {
				rec.GameID = n
			}
		}
	}
}
