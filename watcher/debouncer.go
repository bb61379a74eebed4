package watcher

import (
	"sort"
	"sync"
	"time"
)

// ChangeEvent is one batched file system change relevant to the summary.
type ChangeEvent struct {
	Path string
	Op   EventOp
}

// EventOp represents the type of file system operation.
type EventOp int

const (
	OpCreate EventOp = iota
	OpWrite
	OpRemove
	OpRename
)

// Debouncer collects file system events and emits batches after a quiet
// period, so a burst of editor saves triggers one re-extraction instead of
// many. Multiple events for the same path within the window collapse into
// the latest one.
type Debouncer struct {
	interval time.Duration
	events   map[string]ChangeEvent
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []ChangeEvent
}

// NewDebouncer creates a debouncer with the specified quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		events:   make(map[string]ChangeEvent),
		output:   make(chan []ChangeEvent, 16),
	}
}

// Output returns the channel that receives batched events.
func (d *Debouncer) Output() <-chan []ChangeEvent {
	return d.output
}

// Add adds an event to the debounce window. An existing event for the same
// path is replaced with the latest operation.
func (d *Debouncer) Add(path string, op EventOp) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.events[path] = ChangeEvent{Path: path, Op: op}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

// flush sends the accumulated events, sorted by path so downstream summary
// updates happen in a stable order.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.events) == 0 {
		return
	}

	batch := make([]ChangeEvent, 0, len(d.events))
	for _, event := range d.events {
		batch = append(batch, event)
	}
	sort.Slice(batch, func(i, j int) bool {
		return batch[i].Path < batch[j].Path
	})

	d.events = make(map[string]ChangeEvent)
	d.output <- batch
}
