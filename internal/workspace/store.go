// Package workspace tracks open documents, resolves include paths against
// the propath, and walks transitive includes with a parse-once cache.
package workspace

import (
	"errors"
	"sync"

	"github.com/mvp-joe/abl-cortex/internal/syntax"
)

// ErrSuperseded aborts work whose document version is no longer current.
var ErrSuperseded = errors.New("document version superseded")

// DocumentSnapshot is a point-in-time view of an open document.
type DocumentSnapshot struct {
	URI     string
	Text    string
	Version int
	Tree    syntax.Node
}

type document struct {
	text    string
	version int
	tree    syntax.Tree
}

// Store holds open documents keyed by URI. Versions only move forward;
// stale updates and stale parse results are dropped.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewStore creates an empty document store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*document)}
}

// ShouldAccept reports whether an update at version may be applied: the
// document is unknown or its current version is not newer.
func (s *Store) ShouldAccept(uri string, version int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return !ok || doc.version <= version
}

// IsLatest reports whether version is exactly the current document version.
// Background work re-checks this at every checkpoint and abandons itself
// when a newer edit arrived.
func (s *Store) IsLatest(uri string, version int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	return ok && doc.version == version
}

// Update applies new text at version. A stale version is dropped and
// reported false. The previous tree is closed: it describes text that no
// longer exists.
func (s *Store) Update(uri, text string, version int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		s.docs[uri] = &document{text: text, version: version}
		return true
	}
	if doc.version > version {
		return false
	}
	if doc.tree != nil {
		doc.tree.Close()
		doc.tree = nil
	}
	doc.text = text
	doc.version = version
	return true
}

// SetTree attaches a parse result to the document, but only when version is
// still current; a stale tree is closed and dropped.
func (s *Store) SetTree(uri string, version int, tree syntax.Tree) bool {
	if tree == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok || doc.version != version {
		tree.Close()
		return false
	}
	if doc.tree != nil {
		doc.tree.Close()
	}
	doc.tree = tree
	return true
}

// Snapshot returns the current view of a document. Tree is nil until a
// parse result lands.
func (s *Store) Snapshot(uri string) (DocumentSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[uri]
	if !ok {
		return DocumentSnapshot{}, false
	}
	snap := DocumentSnapshot{URI: uri, Text: doc.text, Version: doc.version}
	if doc.tree != nil {
		snap.Tree = doc.tree.RootNode()
	}
	return snap, true
}

// Close removes a document and releases its tree.
func (s *Store) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc, ok := s.docs[uri]; ok {
		if doc.tree != nil {
			doc.tree.Close()
		}
		delete(s.docs, uri)
	}
}

// CloseAll releases every document.
func (s *Store) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for uri, doc := range s.docs {
		if doc.tree != nil {
			doc.tree.Close()
		}
		delete(s.docs, uri)
	}
}
