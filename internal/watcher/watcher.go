// Package watcher reports changes to individual files.
//
// Files are watched through their parent directory so that editors which
// save by writing a temporary file and renaming it over the original (and
// keyplay's own normalizing rewrite) keep producing events. Rapid changes
// to the same file are coalesced into one event after a short delay.
package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrPathNotExist    = errors.New("path does not exist")
	ErrAlreadyWatching = errors.New("already watching path")
	ErrIsDirectory     = errors.New("path is a directory")
)

// Op describes a set of file operations.
type Op uint8

const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op contains other.
func (op Op) Has(other Op) bool {
	return op&other != 0
}

// String returns the operation names joined by "|".
func (op Op) String() string {
	var parts []string
	if op.Has(OpCreate) {
		parts = append(parts, "CREATE")
	}
	if op.Has(OpWrite) {
		parts = append(parts, "WRITE")
	}
	if op.Has(OpRemove) {
		parts = append(parts, "REMOVE")
	}
	if op.Has(OpRename) {
		parts = append(parts, "RENAME")
	}
	if op.Has(OpChmod) {
		parts = append(parts, "CHMOD")
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event is a coalesced change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string
	// Op is every operation seen during the debounce window.
	Op Op
	// Timestamp is when the last operation was seen.
	Timestamp time.Time
}

// Config configures a Watcher.
type Config struct {
	// Delay is the debounce window.
	Delay time.Duration
	// BufferSize is the capacity of the event and error channels.
	BufferSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Delay:      100 * time.Millisecond,
		BufferSize: 16,
	}
}

// Option configures a Watcher.
type Option func(*Config)

// WithDelay sets the debounce window.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		c.Delay = d
	}
}

// Watcher watches a set of files.
type Watcher struct {
	watcher *fsnotify.Watcher
	config  Config

	mu      sync.Mutex
	files   map[string]bool
	dirs    map[string]int
	pending map[string]*pendingEvent
	closed  bool

	events   chan Event
	errors   chan error
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

type pendingEvent struct {
	event Event
	timer *time.Timer
}

// New creates a watcher.
func New(opts ...Option) (*Watcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Delay <= 0 {
		config.Delay = DefaultConfig().Delay
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		config:  config,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, config.BufferSize),
		errors:  make(chan error, config.BufferSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Add starts watching a file.
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if info.IsDir() {
		return ErrIsDirectory
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[absPath] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Files returns the watched files.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	return files
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

func (w *Watcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 || op == OpChmod {
		return
	}

	path, err := filepath.Abs(fsEvent.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[path] {
		return
	}

	now := time.Now()
	if p, ok := w.pending[path]; ok {
		p.event.Op |= op
		p.event.Timestamp = now
		p.timer.Reset(w.config.Delay)
		return
	}

	p := &pendingEvent{event: Event{Path: path, Op: op, Timestamp: now}}
	p.timer = time.AfterFunc(w.config.Delay, func() {
		w.fire(path)
	})
	w.pending[path] = p
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok || w.closed {
		w.mu.Unlock()
		return
	}
	delete(w.pending, path)
	event := p.event

	// Sending under the lock keeps Close from closing the channel mid-send.
	select {
	case w.events <- event:
	default:
		w.sendErrorLocked(errors.New("event channel full, dropping event"))
	}
	w.mu.Unlock()
}

func (w *Watcher) sendError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.sendErrorLocked(err)
}

func (w *Watcher) sendErrorLocked(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}
