package events

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultQuietWindow is the debounce window used when none is configured.
// The value is a tuned constant: long enough to swallow the notification
// bursts a single logical mutation produces, short enough that a settled
// change still feels immediate.
const DefaultQuietWindow = 150 * time.Millisecond

// Coalescer debounces a stream of raw change events into a single refresh
// trigger. Each incoming event resets the quiet-window timer; the trigger
// fires only once the window elapses with no new events. If events keep
// arriving faster than the window, no trigger fires until they settle:
// the operation producing them has not finished yet.
type Coalescer struct {
	source <-chan struct{}
	window time.Duration
	fire   func()
	logger *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewCoalescer creates a Coalescer that watches source and calls fire after
// each settled burst of events. A non-positive window falls back to
// DefaultQuietWindow. The returned Coalescer is inert until Start is called.
func NewCoalescer(source <-chan struct{}, window time.Duration, fire func(), logger *slog.Logger) *Coalescer {
	if fire == nil {
		panic("fire callback cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if window <= 0 {
		window = DefaultQuietWindow
	}

	return &Coalescer{
		source: source,
		window: window,
		fire:   fire,
		logger: logger.With("component", "change_coalescer"),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the debounce loop on its own goroutine. The fire callback
// runs on that goroutine, never on the goroutine that produced the event,
// so emitting a change never blocks on a refresh.
func (c *Coalescer) Start() {
	go c.run()
}

// Stop shuts the debounce loop down and releases its timer. A burst still
// inside the quiet window when Stop is called is discarded without firing.
// Stop is idempotent and returns once the loop has exited.
func (c *Coalescer) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

func (c *Coalescer) run() {
	defer close(c.done)

	timer := time.NewTimer(c.window)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	// pending tracks whether the timer is armed, so we know if it must be
	// drained before the next Reset.
	pending := false

	for {
		select {
		case _, ok := <-c.source:
			if !ok {
				c.logger.Debug("event source closed, stopping")
				return
			}
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(c.window)
			pending = true

		case <-timer.C:
			pending = false
			c.logger.Debug("quiet window elapsed, firing refresh trigger")
			c.fire()

		case <-c.stop:
			return
		}
	}
}
