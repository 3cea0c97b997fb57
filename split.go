package sie

import (
	"bufio"
	"strconv"
	"strings"
	"unicode/utf8"
)

// splitLine tokenizes one logical record line. Unquoted whitespace
// separates tokens; a double-quoted run is one token with the quotes
// stripped, even when the closing quote is several chunks away. Empty
// unquoted tokens are dropped, but a quoted empty ("") is a real field:
// vendors use it as a positional placeholder in #TRANS lines, and
// dropping it would shift the columns after it. Braces are ordinary
// characters here: inline `{}` object groups are the transaction
// decoder's business.
func splitLine(s string) []string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Split(scanFields)
	var res []string
	for sc.Scan() {
		tok := sc.Text()
		quoted := strings.HasPrefix(tok, `"`)
		if quoted {
			if unq, err := strconv.Unquote(tok); err == nil {
				tok = unq
			} else if unq, err := strconv.Unquote(tok + `"`); err == nil {
				// Unterminated quoted run at end of line.
				tok = unq
			} else {
				tok = strings.TrimPrefix(tok, `"`)
			}
		} else if unq, err := strconv.Unquote(`"` + tok + `"`); err == nil {
			tok = unq
		}
		if tok == "" && !quoted {
			continue
		}
		res = append(res, tok)
	}
	return res
}

// scanFields returns quoted tokens with their delimiters still attached,
// so the caller can tell a quoted empty from no token at all.
func scanFields(data []byte, atEOF bool) (advance int, token []byte, err error) {
	// Skip leading spaces.
	start := 0
	for width := 0; start < len(data); start += width {
		var r rune
		r, width = utf8.DecodeRune(data[start:])
		if !isSpace(r) {
			break
		}
	}

	// A leading quote opens a quoted run.
	inQuote := false
	scanStart := start
	if start < len(data) {
		if r, width := utf8.DecodeRune(data[start:]); r == '"' {
			scanStart = start + width
			inQuote = true
		}
	}

	// Scan until an unquoted space or the closing quote.
	inEscape := false
	for width, i := 0, scanStart; i < len(data); i += width {
		var r rune
		r, width = utf8.DecodeRune(data[i:])
		if !inEscape && r == '\\' {
			inEscape = true
			continue
		}
		if !inQuote && isSpace(r) {
			return i + width, data[start:i], nil
		}
		if !inEscape && inQuote && r == '"' {
			return i + width, data[start : i+width], nil
		}
		inEscape = false
	}

	// A final non-terminated word, quoted or not, is still a word.
	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t':
		return true
	default:
		return false
	}
}
