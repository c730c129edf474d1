package diagnose

import (
	"github.com/mvp-joe/abl-cortex/internal/analysis"
	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax"
	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// Tables aggregates the symbol knowledge of a document and its include
// closure, uppercased for case-insensitive lookup.
type Tables struct {
	// KnownVariables covers variable, parameter, buffer, stream and table
	// definitions plus local table fields and the fields of LIKE targets.
	KnownVariables map[string]struct{}
	// KnownFunctions covers function, procedure and method definitions keyed
	// by normalized callable name.
	KnownFunctions map[string]struct{}
	// ActiveBuffers holds the table-like names in play: buffer aliases and
	// targets, local table names, referenced schema tables.
	ActiveBuffers map[string]struct{}

	Arities    map[string][]int
	Returns    map[string]analysis.BasicType
	Signatures map[string][]analysis.TypeSignature
}

// NewTables returns an empty, fully allocated table set.
func NewTables() *Tables {
	return &Tables{
		KnownVariables: make(map[string]struct{}),
		KnownFunctions: make(map[string]struct{}),
		ActiveBuffers:  make(map[string]struct{}),
		Arities:        make(map[string][]int),
		Returns:        make(map[string]analysis.BasicType),
		Signatures:     make(map[string][]analysis.TypeSignature),
	}
}

// CollectTables folds the document and every file of its include walk into
// one table set. walk and idx may be nil.
func CollectTables(root syntax.Node, text string, walk *workspace.IncludeWalk, idx *schema.Index) *Tables {
	t := NewTables()
	if idx == nil {
		idx = schema.EmptyIndex()
	}

	t.addFile(root, []byte(text), idx)
	if walk != nil {
		for _, file := range walk.Files {
			t.addFile(file.Root, []byte(file.Text), idx)
		}
	}
	return t
}

func (t *Tables) addFile(root syntax.Node, src []byte, idx *schema.Index) {
	if root == nil {
		return
	}
	analysis.CollectKnownSymbols(root, src, t.KnownVariables, t.KnownFunctions)
	analysis.CollectLocalTableFieldSymbols(root, src, idx.TableFields, t.KnownVariables)
	for name := range analysis.CollectActiveBufferLikeNames(root, src, idx.IsTable) {
		t.ActiveBuffers[name] = struct{}{}
	}
	analysis.FunctionArities(root, src, t.Arities)
	analysis.FunctionReturnTypes(root, src, t.Returns)
	analysis.FunctionTypeSignatures(root, src, t.Signatures)
}
