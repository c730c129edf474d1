package diagnose

import (
	"fmt"
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/config"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CheckUnknownVariables flags value references that resolve to nothing:
// no definition in the document or its includes, not a builtin, not a
// schema table or field of an active table, and not plausibly a table field
// by naming convention. The suppression side errs toward silence; a missed
// finding is cheaper than a false one.
func CheckUnknownVariables(root syntax.Node, src []byte, t *Tables, idx *schema.Index, matcher config.FeatureMatcher) []Diagnostic {
	if idx == nil {
		idx = schema.EmptyIndex()
	}

	var out []Diagnostic
	refs := analysis.NormalizeIdentifierRefs(analysis.IdentifierRefs(root, src))
	for _, ref := range refs {
		if _, ok := t.KnownVariables[ref.NameUpper]; ok {
			continue
		}
		// Builtin functions double as value references (TODAY, USERID).
		if analysis.IsBuiltinVariableName(ref.NameUpper) || analysis.IsBuiltinFunctionName(ref.NameUpper) {
			continue
		}
		if idx.IsTable(ref.NameUpper) {
			continue
		}
		if _, ok := t.ActiveBuffers[ref.NameUpper]; ok {
			continue
		}
		if isActiveTableField(ref.NameUpper, t, idx) {
			continue
		}
		if matcher.IgnoresName(ref.DisplayName) {
			continue
		}
		if analysis.LooksLikeTableFieldReference(ref.NameUpper, t.ActiveBuffers) {
			continue
		}
		out = append(out, Diagnostic{
			Range:    ref.Range,
			Severity: SeverityError,
			Source:   SourceSemantic,
			Message:  fmt.Sprintf("Unknown variable '%s'", ref.DisplayName),
		})
	}
	return out
}

func isActiveTableField(nameUpper string, t *Tables, idx *schema.Index) bool {
	for table := range t.ActiveBuffers {
		if _, ok := idx.TableField(table, nameUpper); ok {
			return true
		}
	}
	return false
}

// CheckUnknownFunctions flags calls whose callee is neither declared in the
// document or its includes nor a builtin. Qualified calls are skipped.
func CheckUnknownFunctions(root syntax.Node, src []byte, t *Tables, matcher config.FeatureMatcher) []Diagnostic {
	var out []Diagnostic
	for _, call := range analysis.CallSites(root, src) {
		if strings.ContainsAny(call.DisplayName, ".:") {
			continue
		}
		if analysis.IsBuiltinFunctionName(call.NameUpper) {
			continue
		}
		if _, ok := t.KnownFunctions[call.NameUpper]; ok {
			continue
		}
		if matcher.IgnoresName(call.DisplayName) {
			continue
		}
		out = append(out, Diagnostic{
			Range:    call.Range,
			Severity: SeverityError,
			Source:   SourceSemantic,
			Message:  fmt.Sprintf("Unknown function '%s'", call.DisplayName),
		})
	}
	return out
}
