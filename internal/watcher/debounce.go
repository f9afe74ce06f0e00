package watcher

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDebounce is the delay used when none is given.
const DefaultDebounce = 100 * time.Millisecond

// DebouncedWatcher holds each path's events until the path has been quiet
// for the delay, then delivers one event carrying every op seen. Saving a
// scene typically produces a burst of create, write and rename events; the
// application reloads once per burst.
//
// A single goroutine owns the pending set and is the only sender on the
// output channels.
type DebouncedWatcher struct {
	inner Watcher
	delay time.Duration

	events chan Event
	errors chan error
	flush  chan chan struct{}

	pending atomic.Int32

	closeOnce sync.Once
	closeCh   chan struct{}
	done      chan struct{}
	closeErr  error
}

type pendingEvent struct {
	event Event
	due   time.Time
}

// NewDebouncedWatcher wraps inner. A delay of zero or less uses
// DefaultDebounce.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	dw := &DebouncedWatcher{
		inner:   inner,
		delay:   delay,
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		flush:   make(chan chan struct{}),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go dw.run()
	return dw
}

// Watch starts watching a path.
func (dw *DebouncedWatcher) Watch(path string) error {
	return dw.inner.Watch(path)
}

// Events returns the debounced event channel.
func (dw *DebouncedWatcher) Events() <-chan Event {
	return dw.events
}

// Errors returns the error channel.
func (dw *DebouncedWatcher) Errors() <-chan error {
	return dw.errors
}

// Close drops pending events, closes the wrapped watcher and then the
// output channels.
func (dw *DebouncedWatcher) Close() error {
	dw.closeOnce.Do(func() {
		close(dw.closeCh)
		<-dw.done
		dw.closeErr = dw.inner.Close()
		close(dw.events)
		close(dw.errors)
	})
	return dw.closeErr
}

// Flush delivers every pending event now.
func (dw *DebouncedWatcher) Flush() {
	reply := make(chan struct{})
	select {
	case dw.flush <- reply:
		<-reply
	case <-dw.closeCh:
	}
}

// PendingCount returns the number of paths waiting out their delay.
func (dw *DebouncedWatcher) PendingCount() int {
	return int(dw.pending.Load())
}

func (dw *DebouncedWatcher) run() {
	defer close(dw.done)

	pending := make(map[string]*pendingEvent)
	timer := time.NewTimer(dw.delay)
	timer.Stop()
	defer timer.Stop()

	innerEvents, innerErrors := dw.inner.Events(), dw.inner.Errors()
	for {
		select {
		case <-dw.closeCh:
			return

		case ev, ok := <-innerEvents:
			if !ok {
				innerEvents = nil
				continue
			}
			p, exists := pending[ev.Path]
			if exists {
				p.event.Op |= ev.Op
				p.event.Timestamp = ev.Timestamp
			} else {
				p = &pendingEvent{event: ev}
				pending[ev.Path] = p
			}
			p.due = time.Now().Add(dw.delay)
			dw.pending.Store(int32(len(pending)))
			dw.arm(timer, pending)

		case err, ok := <-innerErrors:
			if !ok {
				innerErrors = nil
				continue
			}
			select {
			case dw.errors <- err:
			default:
			}

		case <-timer.C:
			dw.fire(pending, time.Now())
			dw.arm(timer, pending)

		case reply := <-dw.flush:
			dw.fire(pending, time.Time{})
			timer.Stop()
			close(reply)
		}
	}
}

// arm points the timer at the earliest due event.
func (dw *DebouncedWatcher) arm(timer *time.Timer, pending map[string]*pendingEvent) {
	if len(pending) == 0 {
		timer.Stop()
		return
	}
	var next time.Time
	for _, p := range pending {
		if next.IsZero() || p.due.Before(next) {
			next = p.due
		}
	}
	timer.Reset(max(time.Until(next), 0))
}

// fire sends the events due by now, in path order. A zero now sends all.
// A full channel drops the event.
func (dw *DebouncedWatcher) fire(pending map[string]*pendingEvent, now time.Time) {
	var due []string
	for path, p := range pending {
		if now.IsZero() || !p.due.After(now) {
			due = append(due, path)
		}
	}
	sort.Strings(due)

	for _, path := range due {
		select {
		case dw.events <- pending[path].event:
		default:
		}
		delete(pending, path)
	}
	dw.pending.Store(int32(len(pending)))
}
