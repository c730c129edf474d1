package complete

import (
	"github.com/mvp-joe/abl-cortex/internal/analysis"
)

// SignatureHelp describes the call surrounding the cursor.
type SignatureHelp struct {
	Label       string
	Parameters  []string
	ActiveParam int
}

// Signature finds the enclosing call and renders the richest declaration of
// its callee: the document first, then includes whose site is visible from
// the cursor's scope.
func Signature(p Params) (SignatureHelp, bool) {
	src := []byte(p.Text)
	call, ok := analysis.CallContextAtOffset(p.Root, src, p.Offset)
	if !ok {
		return SignatureHelp{}, false
	}

	if p.Root != nil {
		if sig, ok := analysis.FindFunctionSignature(p.Root, src, call.Name); ok {
			return renderHelp(sig, call.ActiveParam), true
		}
	}

	if p.Walk != nil {
		scope := analysis.ByteScope{Start: 0, End: len(p.Text)}
		if p.Root != nil {
			if s, ok := analysis.ContainingScope(p.Root, p.Offset); ok {
				scope = s
			}
		}
		for _, file := range p.Walk.Files {
			if file.Root == nil || !scope.Contains(file.StampOffset) {
				continue
			}
			if sig, ok := analysis.FindFunctionSignature(file.Root, []byte(file.Text), call.Name); ok {
				return renderHelp(sig, call.ActiveParam), true
			}
		}
	}
	return SignatureHelp{}, false
}

func renderHelp(sig analysis.FunctionSignature, activeParam int) SignatureHelp {
	return SignatureHelp{
		Label:       sig.Label(),
		Parameters:  sig.Params,
		ActiveParam: activeParam,
	}
}
