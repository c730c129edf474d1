package analysis

import "strings"

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// IdentAtOrBefore returns the full [A-Za-z0-9_] identifier at the offset or
// immediately before it.
func IdentAtOrBefore(text string, offset int) (string, bool) {
	return identAtOrBefore(text, offset, isIdentByte)
}

// IdentOrDashAtOrBefore also accepts '-' inside the identifier, matching ABL
// names like f-lpd_det.
func IdentOrDashAtOrBefore(text string, offset int) (string, bool) {
	return identAtOrBefore(text, offset, func(b byte) bool {
		return isIdentByte(b) || b == '-'
	})
}

func identAtOrBefore(text string, offset int, isIdent func(byte) bool) (string, bool) {
	if len(text) == 0 {
		return "", false
	}
	if offset > len(text) {
		offset = len(text)
	}

	var cursor int
	switch {
	case offset < len(text) && isIdent(text[offset]):
		cursor = offset
	case offset > 0 && isIdent(text[offset-1]):
		cursor = offset - 1
	default:
		return "", false
	}

	start := cursor
	for start > 0 && isIdent(text[start-1]) {
		start--
	}
	end := cursor + 1
	for end < len(text) && isIdent(text[end]) {
		end++
	}
	return text[start:end], true
}

// IdentPrefix walks backward from offset and returns the identifier prefix
// ending there.
func IdentPrefix(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:offset]
}

// NormalizeLookupKey trims non-identifier punctuation from both ends and
// uppercases. allowDash keeps '-' so buffer-style names survive.
func NormalizeLookupKey(symbol string, allowDash bool) string {
	trimmed := strings.TrimFunc(symbol, func(r rune) bool {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			return false
		}
		if allowDash && r == '-' {
			return false
		}
		return true
	})
	return strings.ToUpper(trimmed)
}

// NormalizeFunctionName reduces a call target to its rightmost name segment,
// uppercased, so qualified and method-style calls compare against plain
// function definitions.
func NormalizeFunctionName(name string) string {
	segments := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == ':' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	last := name
	if len(segments) > 0 {
		last = segments[len(segments)-1]
	}
	return NormalizeLookupKey(last, true)
}

// QualifierBeforeDot returns the identifier preceding "<qualifier>.<prefix>"
// ending at offset.
func QualifierBeforeDot(text string, offset int, prefix string) (string, bool) {
	if offset < len(prefix)+1 {
		return "", false
	}
	dotPos := offset - len(prefix) - 1
	if dotPos >= len(text) || text[dotPos] != '.' {
		return "", false
	}

	start := dotPos
	for start > 0 {
		b := text[start-1]
		if !isIdentByte(b) && b != '-' {
			break
		}
		start--
	}
	if start == dotPos {
		return "", false
	}
	return text[start:dotPos], true
}

// HasDotBeforeCursor reports whether the byte before offset is a '.'.
func HasDotBeforeCursor(text string, offset int) bool {
	return offset > 0 && offset-1 < len(text) && text[offset-1] == '.'
}
