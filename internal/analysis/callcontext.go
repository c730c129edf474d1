package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// CallContext locates the call surrounding a cursor for signature help.
type CallContext struct {
	Name        string
	ActiveParam int
}

// CallContextAtOffset finds the enclosing call from the tree, falling back
// to a text scan while the user is still typing an unbalanced call.
func CallContextAtOffset(root syntax.Node, src []byte, offset int) (CallContext, bool) {
	if ctx, ok := callContextFromTree(root, src, offset); ok {
		return ctx, true
	}
	return callContextFromText(src, offset)
}

func callContextFromTree(root syntax.Node, src []byte, offset int) (CallContext, bool) {
	if len(src) == 0 || root == nil {
		return CallContext{}, false
	}
	probe := offset - 1
	if probe >= len(src) {
		probe = len(src) - 1
	}
	if probe < 0 {
		probe = 0
	}
	for probe > 0 && isASCIISpace(src[probe]) {
		probe--
	}

	node := syntax.DescendantForByteRange(root, probe, probe)
	for node != nil {
		if node.Kind() == "function_call" {
			fn := node.ChildByFieldName("function")
			name := strings.TrimSpace(syntax.Text(fn, src))
			if name == "" {
				return CallContext{}, false
			}
			if args := syntax.DirectChildByKind(node, "arguments"); args != nil {
				start, end := args.StartByte(), args.EndByte()
				if offset >= start+1 && offset <= end {
					return CallContext{
						Name:        name,
						ActiveParam: activeArgumentIndex(src, start, end, offset),
					}, true
				}
			}
		}
		node = node.Parent()
	}
	return CallContext{}, false
}

// callContextFromText walks backward over balanced brackets, string-aware,
// until an unmatched open paren with a call name before it.
func callContextFromText(src []byte, offset int) (CallContext, bool) {
	if len(src) == 0 {
		return CallContext{}, false
	}
	i := offset
	if i > len(src) {
		i = len(src)
	}
	depth := 0
	inString := false

	for i > 0 {
		i--
		b := src[i]
		if inString {
			if b == '"' {
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case ')', ']', '}':
			depth++
		case '(', '[', '{':
			if depth == 0 {
				if b != '(' {
					continue
				}
				name, ok := callNameBeforeOpenParen(src, i)
				if !ok {
					return CallContext{}, false
				}
				return CallContext{
					Name:        name,
					ActiveParam: activeArgumentIndex(src, i, offset, offset),
				}, true
			}
			depth--
		}
	}
	return CallContext{}, false
}

func callNameBeforeOpenParen(src []byte, openParen int) (string, bool) {
	end := openParen
	for end > 0 && isASCIISpace(src[end-1]) {
		end--
	}
	if end == 0 {
		return "", false
	}

	start := end
	for start > 0 {
		c := src[start-1]
		if !isIdentByte(c) && c != '-' && c != '.' && c != ':' {
			break
		}
		start--
	}
	if start == end {
		return "", false
	}
	name := strings.TrimSpace(string(src[start:end]))
	if name == "" {
		return "", false
	}
	return name, true
}

// activeArgumentIndex counts depth-zero commas between the argument list
// start and the cursor, skipping string contents.
func activeArgumentIndex(src []byte, argsStart, argsEnd, offset int) int {
	if argsStart >= len(src) {
		return 0
	}
	scanEnd := offset
	if argsEnd < scanEnd {
		scanEnd = argsEnd
	}
	if len(src) < scanEnd {
		scanEnd = len(src)
	}
	if scanEnd <= argsStart {
		return 0
	}

	idx := 0
	depth := 0
	inString := false
	for i := argsStart + 1; i < scanEnd; i++ {
		b := src[i]
		if inString {
			if b == '"' {
				inString = false
			}
			continue
		}
		switch b {
		case '"':
			inString = true
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				idx++
			}
		}
	}
	return idx
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
