package analysis

import "strings"

// IncludeSite is an include directive found by textual scan. Include
// directives use a brace syntax that is frequently malformed or commented,
// so the scan is line-oriented and best-effort rather than tree-based.
type IncludeSite struct {
	// RawPath is the literal path text around the ".i" marker.
	RawPath string
	// MacroPrefix is the macro name when the directive has the
	// {{&NAME}rest shape, empty otherwise.
	MacroPrefix string
	StartOffset int
	EndOffset   int
	// FileStartOffset and FileEndOffset span the path text inside the
	// directive, for hit-testing the cursor against the path itself.
	FileStartOffset int
	FileEndOffset   int
}

// IncludeSites scans text line by line for {...} directives containing an
// ".i" path.
func IncludeSites(text string) []IncludeSite {
	var out []IncludeSite
	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := strings.IndexByte(text[lineStart:], '\n')
		var line string
		next := len(text) + 1
		if lineEnd >= 0 {
			line = text[lineStart : lineStart+lineEnd+1]
			next = lineStart + lineEnd + 1
		} else {
			line = text[lineStart:]
		}
		if site, ok := parseIncludeFromLine(line); ok {
			site.StartOffset += lineStart
			site.EndOffset += lineStart
			site.FileStartOffset += lineStart
			site.FileEndOffset += lineStart
			out = append(out, site)
		}
		if lineEnd < 0 {
			break
		}
		lineStart = next
	}
	return out
}

func parseIncludeFromLine(line string) (IncludeSite, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	trimDelta := len(line) - len(trimmed)

	open := strings.IndexByte(trimmed, '{')
	if open < 0 {
		return IncludeSite{}, false
	}
	close := strings.LastIndexByte(trimmed, '}')
	if close <= open {
		return IncludeSite{}, false
	}

	body := trimmed[open+1 : close]
	path, pathStart, pathEnd, ok := extractIncludePath(body)
	if !ok {
		return IncludeSite{}, false
	}

	bodyStart := trimDelta + open + 1
	return IncludeSite{
		RawPath:         path,
		MacroPrefix:     macroPrefixOf(body, pathStart),
		StartOffset:     trimDelta + open,
		EndOffset:       trimDelta + close + 1,
		FileStartOffset: bodyStart + pathStart,
		FileEndOffset:   bodyStart + pathEnd,
	}, true
}

// extractIncludePath expands around the first ".i" over path characters.
func extractIncludePath(body string) (path string, start, end int, ok bool) {
	idx := strings.Index(strings.ToLower(body), ".i")
	if idx < 0 {
		return "", 0, 0, false
	}
	stop := idx + 2

	start = idx
	for start > 0 && isPathChar(body[start-1]) {
		start--
	}
	for stop < len(body) && isPathChar(body[stop]) {
		stop++
	}

	candidate := strings.TrimSpace(body[start:stop])
	if candidate == "" {
		return "", 0, 0, false
	}
	return candidate, start, stop, true
}

// macroPrefixOf recognizes the {{&NAME}rest directive shape, where the path
// is preceded by a macro reference expanding to a directory fragment.
func macroPrefixOf(body string, pathStart int) string {
	head := body[:pathStart]
	if !strings.HasPrefix(head, "{&") {
		return ""
	}
	closeIdx := strings.IndexByte(head, '}')
	if closeIdx < 0 || closeIdx+1 != len(head) {
		return ""
	}
	name := strings.TrimSpace(head[2:closeIdx])
	if name == "" {
		return ""
	}
	return name
}

func isPathChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '-', b == '.', b == '/', b == '\\':
		return true
	}
	return false
}

// SiteContains reports whether offset falls on the directive's path text.
func (s IncludeSite) SiteContains(offset int) bool {
	return offset >= s.StartOffset && offset <= s.EndOffset
}

// ResolveSitePath expands the macro prefix of an include site against the
// defines visible at the site. The latest-preceding matching define wins;
// its value is unquoted and joined with the remaining path using a single
// separator. Without a prefix or a matching define the raw path stands.
func ResolveSitePath(site IncludeSite, defines []DefineSite) string {
	if site.MacroPrefix == "" {
		return site.RawPath
	}
	def, ok := latestPrecedingDefine(defines, site.MacroPrefix, site.StartOffset)
	if !ok || !def.HasValue {
		return site.RawPath
	}
	base := UnquoteDefineValue(def.Value)
	if base == "" {
		return site.RawPath
	}
	return joinMacroPath(base, site.RawPath)
}

func latestPrecedingDefine(defines []DefineSite, name string, offset int) (DefineSite, bool) {
	var best *DefineSite
	for i := range defines {
		d := &defines[i]
		if d.StartByte > offset || !strings.EqualFold(d.Label, name) {
			continue
		}
		if best == nil || d.StartByte >= best.StartByte {
			best = d
		}
	}
	if best == nil {
		return DefineSite{}, false
	}
	return *best, true
}

func joinMacroPath(base, rest string) string {
	base = strings.TrimRight(base, "/\\")
	rest = strings.TrimLeft(rest, "/\\")
	if base == "" {
		return rest
	}
	if rest == "" {
		return base
	}
	return base + "/" + rest
}
