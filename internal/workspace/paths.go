package workspace

import (
	"os"
	"path/filepath"

	"github.com/mvp-joe/abl-cortex/internal/analysis"
)

// PathResolver resolves include references against the propath. Lookup
// order: absolute paths as-is, then each propath entry, then the directory
// of the referencing file, then the workspace root.
type PathResolver struct {
	Root    string
	Propath []string
}

// ResolveInclude maps an include reference to an existing file path.
// currentFile is the file containing the reference; empty when unknown.
func (r *PathResolver) ResolveInclude(rawPath, currentFile string) (string, bool) {
	if rawPath == "" {
		return "", false
	}
	if filepath.IsAbs(rawPath) {
		return rawPath, true
	}

	for _, entry := range r.Propath {
		candidate := filepath.Join(entry, rawPath)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	if currentFile != "" {
		candidate := filepath.Join(filepath.Dir(currentFile), rawPath)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	if r.Root != "" {
		candidate := filepath.Join(r.Root, rawPath)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// ExpandSitePath expands an include site's macro prefix. A macro expansion
// that produced an absolute path pointing at nothing falls back to the raw
// literal, which may still resolve through the propath.
func (r *PathResolver) ExpandSitePath(site analysis.IncludeSite, defines []analysis.DefineSite) string {
	expanded := analysis.ResolveSitePath(site, defines)
	if expanded != site.RawPath && filepath.IsAbs(expanded) && !fileExists(expanded) {
		return site.RawPath
	}
	return expanded
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
