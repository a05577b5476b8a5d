package viewer

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into one signal on C, sent
// once delay has passed without another Trigger. The receiver decides when
// to act, so regeneration stays on the render thread.
type Debouncer struct {
	delay time.Duration
	c     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a debouncer. A zero delay signals on the next
// timer tick.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		c:     make(chan struct{}, 1),
	}
}

// C returns the channel that receives debounced signals.
func (d *Debouncer) C() <-chan struct{} {
	return d.c
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Stop cancels a pending signal.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer) fire() {
	select {
	case d.c <- struct{}{}:
	default:
		// A signal is already pending.
	}
}
