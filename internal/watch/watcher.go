// Package watch re-runs a search whenever the tree under the root changes.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/standardbeagle/yoink/internal/filter"
	"github.com/standardbeagle/yoink/pkg/pathutil"
)

// DefaultDebounce is the quiet period after the last event before a re-run
const DefaultDebounce = 200 * time.Millisecond

// FileEventType represents the type of file system event
type FileEventType int

const (
	FileEventCreate FileEventType = iota
	FileEventWrite
	FileEventRemove
	FileEventRename
)

func (t FileEventType) String() string {
	switch t {
	case FileEventCreate:
		return "create"
	case FileEventWrite:
		return "write"
	case FileEventRemove:
		return "remove"
	case FileEventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// FileWatcher monitors the directories the filter admits and reports batches
// of changed paths after a debounce period.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	root      string
	filter    *filter.Filter
	debouncer *eventDebouncer
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	log       *logrus.Entry

	// Watch mode statistics
	eventsProcessed int64
	errorCount      int64
	lastEventTime   time.Time
	statsMu         sync.RWMutex
}

// NewFileWatcher creates a watcher for root. Start must be called to begin
// watching.
func NewFileWatcher(root string, f *filter.Filter, debounce time.Duration, log *logrus.Entry) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &FileWatcher{
		watcher:   watcher,
		root:      filepath.Clean(root),
		filter:    f,
		debouncer: newEventDebouncer(debounce),
		ctx:       ctx,
		cancel:    cancel,
		log:       log,
	}, nil
}

// Changes delivers one sorted batch of relative paths per debounce window.
// A batch is dropped when the previous one has not been consumed yet; the
// pending batch already triggers a full re-run.
func (fw *FileWatcher) Changes() <-chan []string {
	return fw.debouncer.out
}

// Start adds watches and begins processing events
func (fw *FileWatcher) Start() error {
	fw.log.WithField("root", fw.root).Debug("starting file watcher")

	if err := fw.addWatches(fw.root); err != nil {
		return err
	}

	fw.wg.Add(1)
	go fw.processEvents()
	return nil
}

// Stop stops the watcher and waits for its goroutines to finish
func (fw *FileWatcher) Stop() error {
	fw.cancel()
	err := fw.watcher.Close()
	fw.wg.Wait()
	fw.debouncer.stop()
	stats := fw.GetStats()
	fw.log.WithFields(logrus.Fields{
		"events": stats.EventsProcessed,
		"errors": stats.ErrorCount,
	}).Debug("file watcher stopped")
	return err
}

// addWatches adds a watch for dir and every admitted directory beneath it.
// Symlinked directories are never descended.
func (fw *FileWatcher) addWatches(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && d == nil {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != fw.root && !fw.admitDir(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.log.WithError(err).WithField("path", path).Warn("failed to add watch")
		}
		return nil
	})
}

func (fw *FileWatcher) relative(path string) (string, bool) {
	rel := pathutil.ToRelative(path, fw.root)
	if rel == "." || filepath.IsAbs(rel) {
		return "", false
	}
	return pathutil.Key(rel), true
}

func (fw *FileWatcher) admitDir(path string) bool {
	rel, ok := fw.relative(path)
	if !ok {
		return false
	}
	entry := filter.Entry{Rel: rel, IsDir: true}
	if fw.filter.NeedsDevice() {
		entry.Device, entry.HasDevice = filter.DeviceOf(path)
	}
	return fw.filter.Decide(entry) == filter.Include
}

// processEvents processes file system events from fsnotify
func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.incrementStats(0, 1)
			fw.log.WithError(err).Debug("file watcher error")
		}
	}
}

// handleEvent filters one event and hands it to the debouncer
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	var eventType FileEventType
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = FileEventCreate
	case event.Op&fsnotify.Write != 0:
		eventType = FileEventWrite
	case event.Op&fsnotify.Remove != 0:
		eventType = FileEventRemove
	case event.Op&fsnotify.Rename != 0:
		eventType = FileEventRename
	default:
		return
	}

	rel, ok := fw.relative(event.Name)
	if !ok {
		return
	}

	entry := filter.Entry{Rel: rel}
	if info, err := os.Lstat(event.Name); err == nil {
		entry.IsDir = info.IsDir()
		entry.IsSymlink = info.Mode()&os.ModeSymlink != 0
	}
	if fw.filter.Decide(entry) != filter.Include {
		return
	}

	if entry.IsDir && eventType == FileEventCreate {
		if err := fw.addWatches(event.Name); err != nil {
			fw.log.WithError(err).WithField("path", rel).Debug("failed to watch new directory")
		}
	}

	fw.incrementStats(1, 0)
	fw.log.WithFields(logrus.Fields{"path": rel, "event": eventType}).Debug("change observed")
	fw.debouncer.addEvent(rel)
}

// eventDebouncer batches file events to avoid excessive re-runs
type eventDebouncer struct {
	events   map[string]struct{}
	mutex    sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	stopped  bool
	out      chan []string
}

func newEventDebouncer(debounce time.Duration) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]struct{}),
		debounce: debounce,
		out:      make(chan []string, 1),
	}
}

// addEvent records path and restarts the quiet period
func (d *eventDebouncer) addEvent(path string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}

	d.events[path] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.flush)
}

func (d *eventDebouncer) flush() {
	d.mutex.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mutex.Unlock()
		return
	}
	batch := make([]string, 0, len(d.events))
	for path := range d.events {
		batch = append(batch, path)
	}
	d.events = make(map[string]struct{})
	d.mutex.Unlock()

	sort.Strings(batch)
	select {
	case d.out <- batch:
	default:
	}
}

// stop discards pending events; a pending timer fires into a no-op
func (d *eventDebouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.events = make(map[string]struct{})
}

// incrementStats updates watch mode statistics
func (fw *FileWatcher) incrementStats(events int64, errors int64) {
	fw.statsMu.Lock()
	defer fw.statsMu.Unlock()

	fw.eventsProcessed += events
	fw.errorCount += errors
	if events > 0 {
		fw.lastEventTime = time.Now()
	}
}

// GetStats returns current watch mode statistics
func (fw *FileWatcher) GetStats() WatchStats {
	fw.statsMu.RLock()
	defer fw.statsMu.RUnlock()

	return WatchStats{
		EventsProcessed: fw.eventsProcessed,
		ErrorCount:      fw.errorCount,
		LastEventTime:   fw.lastEventTime,
		IsActive:        fw.ctx.Err() == nil,
	}
}

// WatchStats contains statistics about file watching operations
type WatchStats struct {
	EventsProcessed int64
	ErrorCount      int64
	LastEventTime   time.Time
	IsActive        bool
}
