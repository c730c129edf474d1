package analysis

import (
	"strings"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// DefineSite is a preprocessor macro definition. Scoped defines are visible
// to the rest of the defining file; global defines are also exported to every
// file that subsequently includes this one.
type DefineSite struct {
	Label     string
	Value     string
	HasValue  bool
	Range     syntax.Range
	StartByte int
	IsGlobal  bool
}

// DefineSites collects scoped and global preprocessor defines in source order.
func DefineSites(root syntax.Node, src []byte) []DefineSite {
	var out []DefineSite
	collectDefineSites(root, src, false, &out)
	return out
}

// GlobalDefineSites collects only the defines a file exports to its includers.
func GlobalDefineSites(root syntax.Node, src []byte) []DefineSite {
	var out []DefineSite
	collectDefineSites(root, src, true, &out)
	return out
}

func collectDefineSites(node syntax.Node, src []byte, globalOnly bool, out *[]DefineSite) {
	if node == nil {
		return
	}

	isGlobal := node.Kind() == "global_define"
	if (isGlobal || node.Kind() == "scoped_define") && (!globalOnly || isGlobal) {
		if name := node.ChildByFieldName("name"); name != nil {
			label := strings.TrimSpace(syntax.Text(name, src))
			if label != "" {
				site := DefineSite{
					Label:     label,
					Range:     syntax.NodeRange(name),
					StartByte: name.StartByte(),
					IsGlobal:  isGlobal,
				}
				if value := node.ChildByFieldName("value"); value != nil {
					site.Value = strings.TrimSpace(syntax.Text(value, src))
					site.HasValue = true
				}
				*out = append(*out, site)
			}
		}
	}

	for i := 0; i < node.ChildCount(); i++ {
		collectDefineSites(node.Child(i), src, globalOnly, out)
	}
}

// BestDefineSite returns the matching define closest before offset, else the
// closest after it.
func BestDefineSite(sites []DefineSite, symbol string, offset int) (DefineSite, bool) {
	var before, after *DefineSite
	for i := range sites {
		site := &sites[i]
		if !strings.EqualFold(site.Label, symbol) {
			continue
		}
		if site.StartByte <= offset {
			if before == nil || site.StartByte > before.StartByte {
				before = site
			}
		} else {
			if after == nil || site.StartByte < after.StartByte {
				after = site
			}
		}
	}
	if before != nil {
		return *before, true
	}
	if after != nil {
		return *after, true
	}
	return DefineSite{}, false
}

// UnquoteDefineValue strips a matching quote pair and surrounding whitespace
// from a macro value.
func UnquoteDefineValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return strings.TrimSpace(trimmed[1 : len(trimmed)-1])
		}
	}
	return trimmed
}
