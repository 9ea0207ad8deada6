package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"casebook/pkg/logging"
)

// DefaultDebounce is used when a Detector is created with a zero interval.
const DefaultDebounce = 300 * time.Millisecond

// Operation describes what happened to a file.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Change is the net effect of a burst of events on one file.
type Change struct {
	File      string
	Operation Operation
}

// Event is emitted once per debounced burst.
type Event struct {
	Dir       string
	Changes   []Change
	Timestamp time.Time
}

// Files returns the names of the changed files in the order of Changes.
func (e Event) Files() []string {
	files := make([]string, len(e.Changes))
	for i, c := range e.Changes {
		files[i] = c.File
	}
	return files
}

// Detector watches one case directory for YAML file changes.
type Detector struct {
	mu sync.Mutex

	dir              string
	debounceInterval time.Duration

	watcher *fsnotify.Watcher
	pending map[string]Operation
	timer   *time.Timer

	stopCh  chan struct{}
	running bool
}

// NewDetector creates a detector for dir.
func NewDetector(dir string, debounceInterval time.Duration) *Detector {
	if debounceInterval <= 0 {
		debounceInterval = DefaultDebounce
	}

	return &Detector{
		dir:              dir,
		debounceInterval: debounceInterval,
		pending:          make(map[string]Operation),
	}
}

// Start begins watching. Events are delivered on events until ctx is done or
// Stop is called. A full channel drops the event with a warning.
func (d *Detector) Start(ctx context.Context, events chan<- Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	info, err := os.Stat(d.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", d.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(d.dir); err != nil {
		watcher.Close()
		return err
	}

	d.watcher = watcher
	d.stopCh = make(chan struct{})
	d.running = true

	go d.processEvents(ctx, watcher, d.stopCh, events)

	logging.Info("Watch", "Started watching %s for case changes", d.dir)
	return nil
}

func (d *Detector) processEvents(ctx context.Context, watcher *fsnotify.Watcher, stopCh <-chan struct{}, events chan<- Event) {
	for {
		select {
		case <-ctx.Done():
			d.cancelPending()
			return

		case <-stopCh:
			d.cancelPending()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			d.handleFsEvent(event, events)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watch", err, "Filesystem watcher error")
		}
	}
}

func (d *Detector) handleFsEvent(event fsnotify.Event, events chan<- Event) {
	if !isCaseDirFile(event.Name) {
		return
	}

	var operation Operation
	switch {
	case event.Has(fsnotify.Create):
		operation = OperationCreate
	case event.Has(fsnotify.Write):
		operation = OperationUpdate
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// the new name of a rename arrives as its own create
		operation = OperationDelete
	default:
		return
	}

	name := filepath.Base(event.Name)
	logging.Debug("Watch", "%s %s", operation, name)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}
	if previous, ok := d.pending[name]; ok {
		operation = mergeOperations(previous, operation)
	}
	d.pending[name] = operation

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounceInterval, func() { d.flush(events) })
}

// flush emits everything collected since the last flush.
func (d *Detector) flush(events chan<- Event) {
	d.mu.Lock()
	if len(d.pending) == 0 || !d.running {
		d.mu.Unlock()
		return
	}
	changes := make([]Change, 0, len(d.pending))
	for file, op := range d.pending {
		changes = append(changes, Change{File: file, Operation: op})
	}
	d.pending = make(map[string]Operation)
	d.timer = nil
	d.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].File < changes[j].File })

	event := Event{Dir: d.dir, Changes: changes, Timestamp: time.Now()}
	select {
	case events <- event:
		logging.Debug("Watch", "Emitted change event for %d file(s)", len(changes))
	default:
		logging.Warn("Watch", "Change event channel full, dropping event for %d file(s)", len(changes))
	}
}

// mergeOperations folds a later operation on the same file into an earlier one.
func mergeOperations(old, new Operation) Operation {
	if old == OperationCreate && new == OperationUpdate {
		return OperationCreate
	}
	if old == OperationDelete && new == OperationCreate {
		// replaced in place, e.g. an editor's atomic save
		return OperationUpdate
	}
	return new
}

func (d *Detector) cancelPending() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]Operation)
}

// Stop stops watching. It is safe to call more than once.
func (d *Detector) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	d.running = false
	close(d.stopCh)
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	var err error
	if d.watcher != nil {
		err = d.watcher.Close()
		d.watcher = nil
	}

	logging.Info("Watch", "Stopped watching %s", d.dir)
	return err
}

// isCaseDirFile reports whether a path can affect what the loader reads.
func isCaseDirFile(path string) bool {
	return strings.HasSuffix(filepath.Base(path), ".yaml")
}
