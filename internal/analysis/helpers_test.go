package analysis

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

// over builds a named node of the given kind spanning the first occurrence of
// sub in src. Panics on a missing substring, which means the fixture is wrong.
func over(src, kind, sub string) *syntaxtest.Node {
	start := strings.Index(src, sub)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", sub))
	}
	return syntaxtest.N(kind, start, start+len(sub))
}

// overAt is over starting the search at from, for repeated substrings.
func overAt(src, kind, sub string, from int) *syntaxtest.Node {
	start := strings.Index(src[from:], sub)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source after %d", sub, from))
	}
	start += from
	return syntaxtest.N(kind, start, start+len(sub))
}
