package schema

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the schema snapshot when any dump file changes. Editors
// regenerate dumps with several rapid writes, so reloads are debounced.
type Watcher struct {
	watcher  *fsnotify.Watcher
	paths    map[string]bool
	debounce time.Duration
	snapshot *Snapshot
	onReload func(*Index)

	cancel   context.CancelFunc
	timerMu  sync.Mutex
	timer    *time.Timer
	stopOnce sync.Once
	doneCh   chan struct{}
}

// NewWatcher watches the parent directories of the dump paths; watching the
// files directly breaks on editors that replace files on save.
func NewWatcher(snapshot *Snapshot, dumpPaths []string, onReload func(*Index)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsWatcher,
		paths:    make(map[string]bool),
		debounce: 500 * time.Millisecond,
		snapshot: snapshot,
		onReload: onReload,
		doneCh:   make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, path := range dumpPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.paths[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			log.Printf("Warning: failed to watch schema directory %s: %v", dir, err)
		}
	}

	return w, nil
}

// Start begins watching. The initial load happens here as well so callers
// get a populated snapshot without racing the first event.
func (w *Watcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	w.reload()
	go w.watch(ctx)
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	reloadCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}
			w.resetTimer(reloadCh)

		case <-reloadCh:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Schema watcher error: %v", err)
		}
	}
}

func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		abs = event.Name
	}
	return w.paths[abs]
}

func (w *Watcher) resetTimer(reloadCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		if !w.timer.Stop() {
			select {
			case <-reloadCh:
			default:
			}
		}
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case reloadCh <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) reload() {
	paths := make([]string, 0, len(w.paths))
	for path := range w.paths {
		paths = append(paths, path)
	}
	idx, err := LoadIndex(paths)
	if err != nil {
		// Keep serving the previous snapshot.
		log.Printf("Schema reload failed: %v", err)
		return
	}
	w.snapshot.Replace(idx)
	log.Printf("Schema reloaded: %d table(s) from %d dump file(s)", len(idx.tables), len(paths))
	if w.onReload != nil {
		w.onReload(idx)
	}
}
