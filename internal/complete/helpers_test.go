package complete

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mvp-joe/abl-cortex/internal/schema"
	"github.com/mvp-joe/abl-cortex/internal/syntax/syntaxtest"
)

func over(src, kind, sub string) *syntaxtest.Node {
	return overAt(src, kind, sub, 0)
}

func overAt(src, kind, sub string, from int) *syntaxtest.Node {
	start := strings.Index(src[from:], sub)
	if start < 0 {
		panic(fmt.Sprintf("fixture: %q not in source", sub))
	}
	start += from
	return syntaxtest.N(kind, start, start+len(sub))
}

func sampleIndex(t *testing.T) *schema.Index {
	t.Helper()
	dump := schema.ParseDump("sports.df", []byte(
		"ADD TABLE \"customer\"\n"+
			"ADD FIELD \"cust-num\" OF \"customer\" AS integer\n"+
			"  FORMAT \"999\"\n"+
			"  LABEL \"Num\"\n"+
			"ADD FIELD \"name\" OF \"customer\" AS character\n"))
	return schema.BuildIndex([]*schema.Dump{dump})
}
