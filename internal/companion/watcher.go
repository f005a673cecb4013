package companion

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"curl-mapper/internal/diagnostic"
)

// DefaultDebounce is the quiet period after the last change before a reload.
const DefaultDebounce = 200 * time.Millisecond

// ErrNoDir is returned by NewWatcher for an empty directory path.
var ErrNoDir = errors.New("companion directory is empty")

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	Debounce time.Duration
	// Cache is optional.
	Cache *Cache
	// OnReload is called after every reload, including the initial load,
	// from the goroutine that performed it.
	OnReload func(*Set, *diagnostic.Diagnostics)
}

// Watcher keeps a Set in sync with the companion documents in a directory.
type Watcher struct {
	dir  string
	opts WatcherOptions

	mu  sync.RWMutex
	set *Set

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// NewWatcher loads dir and starts watching it for changes. Close stops it.
func NewWatcher(dir string, opts WatcherOptions) (*Watcher, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, ErrNoDir
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w := &Watcher{
		dir:    dir,
		opts:   opts,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	if err := w.Reload(); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	w.watcher = fw

	go w.loop()

	log.Printf("companion watcher enabled: dir=%q debounce_ms=%d", dir, opts.Debounce.Milliseconds())

	return w, nil
}

// Snapshot returns the current Set. The returned Set is never mutated by
// the Watcher; a reload swaps in a new one.
func (w *Watcher) Snapshot() *Set {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.set
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Reload loads the directory now and swaps in the new Set.
func (w *Watcher) Reload() error {
	set, diags, err := LoadDir(w.dir, w.opts.Cache)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.set = set
	w.mu.Unlock()

	for _, d := range diags.All() {
		log.Printf("companion document %s: code=%s source=%q message=%q", d.Severity, d.Code, d.Source, d.Message)
	}

	if w.opts.OnReload != nil {
		w.opts.OnReload(set, diags)
	}

	return nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error

	w.once.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
		<-w.doneCh
	})

	return err
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.opts.Debounce)
			timerC = timer.C

			return
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		timer.Reset(w.opts.Debounce)
		timerC = timer.C
	}

	for {
		select {
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}

			return
		case <-timerC:
			timerC = nil

			if err := w.Reload(); err != nil {
				log.Printf("companion reload failed: dir=%q err=%v", w.dir, err)
				continue
			}

			log.Printf("companion reload ok: dir=%q documents=%d", w.dir, w.Snapshot().Len())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			log.Printf("companion watcher error: %v", err)
		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if shouldTriggerReload(evt) {
				resetTimer()
			}
		}
	}
}

func shouldTriggerReload(evt fsnotify.Event) bool {
	if strings.TrimSpace(evt.Name) == "" {
		return false
	}

	if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	base := filepath.Base(evt.Name)

	return !strings.HasPrefix(base, ".") && IsDocumentFile(base)
}
