package diagnose

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CheckArities flags calls to locally declared functions whose argument count
// matches no declaration. Qualified calls (handle or object invocations) are
// left alone; their targets are not tracked here.
func CheckArities(root syntax.Node, src []byte, arities map[string][]int) []Diagnostic {
	var out []Diagnostic
	for _, call := range analysis.CallSites(root, src) {
		if strings.ContainsAny(call.DisplayName, ".:") {
			continue
		}
		declared := arities[call.NameUpper]
		if len(declared) == 0 || arityAllowed(declared, call.ArgCount) {
			continue
		}
		out = append(out, Diagnostic{
			Range:    call.Range,
			Severity: SeverityError,
			Source:   SourceSemantic,
			Message: fmt.Sprintf("Function '%s' expects %s argument(s), got %d",
				call.DisplayName, formatAritySet(declared), call.ArgCount),
		})
	}
	return out
}

func arityAllowed(declared []int, count int) bool {
	for _, n := range declared {
		if n == count {
			return true
		}
	}
	return false
}

// formatAritySet renders the accepted counts sorted and deduplicated, joined
// with " or ".
func formatAritySet(declared []int) string {
	unique := make([]int, 0, len(declared))
	seen := make(map[int]bool, len(declared))
	for _, n := range declared {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	sort.Ints(unique)

	parts := make([]string, len(unique))
	for i, n := range unique {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " or ")
}
