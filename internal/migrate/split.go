package migrate

import "strings"

// SplitStatements splits a SQL text into statements on semicolons, dropping
// fragments that are blank or contain only comments. Semicolons inside quoted
// strings and comments are not delimiters.
func SplitStatements(sql string) []string {
	var stmts []string
	var buf strings.Builder

	const (
		stateNormal = iota
		stateSingleQuote
		stateLineComment
		stateBlockComment
	)
	state := stateNormal

	runes := []rune(sql)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		var next rune
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch state {
		case stateNormal:
			switch {
			case ch == '\'':
				state = stateSingleQuote
				buf.WriteRune(ch)
			case ch == '-' && next == '-':
				state = stateLineComment
				i++
			case ch == '/' && next == '*':
				state = stateBlockComment
				i++
			case ch == ';':
				appendStatement(&stmts, buf.String())
				buf.Reset()
			default:
				buf.WriteRune(ch)
			}
		case stateSingleQuote:
			buf.WriteRune(ch)
			if ch == '\'' {
				// doubled quote is an escaped quote, stay in string
				if next == '\'' {
					buf.WriteRune(next)
					i++
				} else {
					state = stateNormal
				}
			}
		case stateLineComment:
			if ch == '\n' {
				state = stateNormal
				buf.WriteRune(ch)
			}
		case stateBlockComment:
			if ch == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}
	appendStatement(&stmts, buf.String())

	return stmts
}

func appendStatement(stmts *[]string, raw string) {
	stmt := strings.TrimSpace(raw)
	if stmt == "" {
		return
	}
	*stmts = append(*stmts, stmt)
}
