package pgn

import (
	"fmt"
	"strings"
)

// movetext lines are wrapped near this width, per PGN export convention.
const exportLineWidth = 80

// Render produces the full PGN text for a record: tag-pair block, blank
// line, then numbered movetext terminated by the result token.
func Render(r *Record) string {
	if r == nil {
		return ""
	}
	result := strings.TrimSpace(r.Result)
	if result == "" {
		result = ResultOngoing
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[Event \"%s\"]\n", sanitizeTag(r.Event)))
	b.WriteString(fmt.Sprintf("[Site \"%s\"]\n", sanitizeTag(r.Site)))
	date := r.Date
	b.WriteString(fmt.Sprintf("[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day()))
	b.WriteString(fmt.Sprintf("[Round \"%s\"]\n", sanitizeTag(r.Round)))
	b.WriteString(fmt.Sprintf("[White \"%s\"]\n", sanitizeTag(r.White)))
	b.WriteString(fmt.Sprintf("[Black \"%s\"]\n", sanitizeTag(r.Black)))
	if r.Board > 0 {
		b.WriteString(fmt.Sprintf("[Board \"%d\"]\n", r.Board))
	}
	if r.GameID > 1 {
		b.WriteString(fmt.Sprintf("[GameID \"%d\"]\n", r.GameID))
	}
	if strings.TrimSpace(r.Termination) != "" {
		b.WriteString(fmt.Sprintf("[Termination \"%s\"]\n", sanitizeTag(strings.ToLower(r.Termination))))
	}
	b.WriteString(fmt.Sprintf("[Result \"%s\"]\n\n", result))

	b.WriteString(renderMovetext(r.MovesSAN, result))
	b.WriteString("\n")
	return b.String()
}

func renderMovetext(sans []string, result string) string {
	tokens := make([]string, 0, len(sans)+len(sans)/2+1)
	for i, san := range sans {
		if i%2 == 0 {
			tokens = append(tokens, fmt.Sprintf("%d.", i/2+1))
		}
		tokens = append(tokens, strings.TrimSpace(san))
	}
	tokens = append(tokens, result)

	var b strings.Builder
	lineLen := 0
	for i, tok := range tokens {
		if i > 0 {
			if lineLen+1+len(tok) > exportLineWidth {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(tok)
		lineLen += len(tok)
	}
	return b.String()
}

// sanitizeTag keeps tag values inside PGN string syntax.
func sanitizeTag(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
