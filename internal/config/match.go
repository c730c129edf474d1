package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// FeatureMatcher is a FeatureConfig with its exclude patterns compiled and
// its ignore names normalized. Matching is case-insensitive.
type FeatureMatcher struct {
	Enabled bool

	globs  []glob.Glob
	ignore map[string]struct{}
}

// NewFeatureMatcher compiles the feature's exclude patterns. Invalid patterns
// fail the load rather than silently matching nothing.
func NewFeatureMatcher(fc FeatureConfig) (FeatureMatcher, error) {
	m := FeatureMatcher{
		Enabled: fc.Enabled,
		ignore:  make(map[string]struct{}, len(fc.Ignore)),
	}
	for _, pattern := range fc.Exclude {
		g, err := glob.Compile(normalizePath(pattern), '/')
		if err != nil {
			return FeatureMatcher{}, fmt.Errorf("compiling exclude pattern %q: %w", pattern, err)
		}
		m.globs = append(m.globs, g)
	}
	for _, name := range fc.Ignore {
		m.ignore[strings.ToUpper(strings.TrimSpace(name))] = struct{}{}
	}
	return m, nil
}

// ExcludesFile reports whether the file is excluded from this check. Each
// pattern is tried against the normalized absolute path, the
// workspace-relative path and the basename.
func (m FeatureMatcher) ExcludesFile(workspaceRoot, path string) bool {
	if len(m.globs) == 0 {
		return false
	}

	abs := normalizePath(path)
	candidates := []string{abs, filepath.Base(abs)}
	if rel, err := filepath.Rel(workspaceRoot, path); err == nil && !strings.HasPrefix(rel, "..") {
		candidates = append(candidates, normalizePath(rel))
	}

	for _, g := range m.globs {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

// IgnoresName reports whether a symbol name is on the ignore list.
func (m FeatureMatcher) IgnoresName(name string) bool {
	_, ok := m.ignore[strings.ToUpper(strings.TrimSpace(name))]
	return ok
}

func normalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, `\`, "/"))
}

// Matchers holds the compiled per-check matchers for one workspace.
type Matchers struct {
	Diagnostics      bool
	Completion       bool
	UnknownVariables FeatureMatcher
	UnknownFunctions FeatureMatcher
	TypeChecks       FeatureMatcher
}

// NewMatchers compiles every feature block of the configuration.
func NewMatchers(cfg *Config) (*Matchers, error) {
	unknownVars, err := NewFeatureMatcher(cfg.Diagnostics.UnknownVariables)
	if err != nil {
		return nil, err
	}
	unknownFns, err := NewFeatureMatcher(cfg.Diagnostics.UnknownFunctions)
	if err != nil {
		return nil, err
	}
	typeChecks, err := NewFeatureMatcher(cfg.Diagnostics.TypeChecks)
	if err != nil {
		return nil, err
	}
	return &Matchers{
		Diagnostics:      cfg.Diagnostics.Enabled,
		Completion:       cfg.Completion.Enabled,
		UnknownVariables: unknownVars,
		UnknownFunctions: unknownFns,
		TypeChecks:       typeChecks,
	}, nil
}

// MustMatchers is NewMatchers for configurations already validated at load
// time; a compile failure here is a programming error.
func MustMatchers(cfg *Config) *Matchers {
	m, err := NewMatchers(cfg)
	if err != nil {
		log.Panicf("config: %v", err)
	}
	return m
}
