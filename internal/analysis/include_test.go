package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncludeSitesScan(t *testing.T) {
	text := "FIND FIRST cust.\n" +
		"  {lib/common.i}\n" +
		"{{&libdir}util.i \"arg\"}\n" +
		"no directive here\n"

	sites := IncludeSites(text)
	require.Len(t, sites, 2)

	plain := sites[0]
	assert.Equal(t, "lib/common.i", plain.RawPath)
	assert.Empty(t, plain.MacroPrefix)
	assert.Equal(t, strings.Index(text, "{lib"), plain.StartOffset)
	assert.Equal(t, strings.Index(text, "common.i}")+len("common.i}"), plain.EndOffset)
	assert.Equal(t, strings.Index(text, "lib/common.i"), plain.FileStartOffset)
	assert.Equal(t, strings.Index(text, "lib/common.i")+len("lib/common.i"), plain.FileEndOffset)

	prefixed := sites[1]
	assert.Equal(t, "util.i", prefixed.RawPath)
	assert.Equal(t, "libdir", prefixed.MacroPrefix)
	assert.Equal(t, strings.Index(text, "{{&libdir}"), prefixed.StartOffset)

	assert.True(t, plain.SiteContains(plain.StartOffset))
	assert.True(t, plain.SiteContains(plain.EndOffset))
	assert.False(t, plain.SiteContains(plain.StartOffset-1))
}

func TestIncludeSitesLastLineWithoutNewline(t *testing.T) {
	text := "{tail.i}"
	sites := IncludeSites(text)
	require.Len(t, sites, 1)
	assert.Equal(t, "tail.i", sites[0].RawPath)
	assert.Equal(t, 0, sites[0].StartOffset)
	assert.Equal(t, len(text), sites[0].EndOffset)
}

func TestIncludeSitesIgnoreBracesWithoutIncludePath(t *testing.T) {
	text := "{&SOME-MACRO}\n{no dot eye}\n"
	assert.Empty(t, IncludeSites(text))
}

func TestResolveSitePath(t *testing.T) {
	site := IncludeSite{RawPath: "util.i", MacroPrefix: "libdir", StartOffset: 100}
	defines := []DefineSite{
		{Label: "libdir", Value: `"src/lib"`, HasValue: true, StartByte: 10},
		{Label: "LIBDIR", Value: `'src/lib2/'`, HasValue: true, StartByte: 50},
		{Label: "libdir", Value: `"too/late"`, HasValue: true, StartByte: 150},
	}

	assert.Equal(t, "src/lib2/util.i", ResolveSitePath(site, defines))

	// No matching define leaves the raw path.
	assert.Equal(t, "util.i", ResolveSitePath(site, defines[2:]))

	// Without a macro prefix the raw path stands.
	plain := IncludeSite{RawPath: "lib/common.i", StartOffset: 100}
	assert.Equal(t, "lib/common.i", ResolveSitePath(plain, defines))

	// A valueless define cannot expand the prefix.
	assert.Equal(t, "util.i", ResolveSitePath(site, []DefineSite{{Label: "libdir", StartByte: 10}}))
}
