package diagnose

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/abl-cortex/internal/workspace"
)

// defaultDebounce coalesces keystroke bursts into one diagnostics run.
const defaultDebounce = 200 * time.Millisecond

// PublishFunc receives the diagnostics of a completed run.
type PublishFunc func(uri string, version int, diags []Diagnostic)

// Scheduler debounces diagnostics per document. Scheduling a newer version
// replaces the pending run for the same document.
type Scheduler struct {
	engine  *Engine
	publish PublishFunc
	delay   time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewScheduler creates a scheduler publishing through publish.
func NewScheduler(engine *Engine, publish PublishFunc) *Scheduler {
	return &Scheduler{
		engine:  engine,
		publish: publish,
		delay:   defaultDebounce,
		timers:  make(map[string]*time.Timer),
	}
}

// Schedule queues a run for the document version after the debounce window.
func (s *Scheduler) Schedule(uri string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if timer, ok := s.timers[uri]; ok {
		timer.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.delay, func() {
		s.run(uri, version)
	})
}

// Cancel drops the pending run for a document, typically on close. A run
// already past the timer abandons itself at its next version check.
func (s *Scheduler) Cancel(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[uri]; ok {
		timer.Stop()
		delete(s.timers, uri)
	}
}

func (s *Scheduler) run(uri string, version int) {
	s.mu.Lock()
	delete(s.timers, uri)
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	runID := uuid.NewString()
	diags, err := s.engine.Check(context.Background(), uri, version)
	if err != nil {
		if errors.Is(err, workspace.ErrSuperseded) {
			return
		}
		log.Printf("Warning: diagnostics run %s for %s failed: %v", runID, uri, err)
		return
	}
	s.publish(uri, version, diags)
}

// Close stops every pending run. Runs already past the timer may still
// publish; version guards keep them from publishing stale results over
// newer ones.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for uri, timer := range s.timers {
		timer.Stop()
		delete(s.timers, uri)
	}
}
