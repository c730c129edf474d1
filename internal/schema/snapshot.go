package schema

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Snapshot holds the current index behind an atomic pointer. Readers take a
// consistent view with Current and never block a reload.
type Snapshot struct {
	index atomic.Pointer[Index]
}

// Current returns the live index, never nil.
func (s *Snapshot) Current() *Index {
	if idx := s.index.Load(); idx != nil {
		return idx
	}
	return EmptyIndex()
}

// Replace swaps in a newly built index.
func (s *Snapshot) Replace(idx *Index) {
	if idx == nil {
		idx = EmptyIndex()
	}
	s.index.Store(idx)
}

// LoadIndex reads and parses the given dump files into a fresh index.
// A missing or unreadable dump is logged and skipped so one bad path does
// not blank the whole schema; an error is returned only when every read
// failed.
func LoadIndex(paths []string) (*Index, error) {
	var dumps []*Dump
	var firstErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: failed to read schema dump %s: %v", path, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		dumps = append(dumps, ParseDump(path, data))
	}
	if len(dumps) == 0 && firstErr != nil {
		return nil, fmt.Errorf("loading schema dumps: %w", firstErr)
	}
	return BuildIndex(dumps), nil
}
