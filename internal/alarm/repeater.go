package alarm

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRepeatInterval is the hard-mode re-alert cadence.
const DefaultRepeatInterval = 15 * time.Second

// Repeater re-issues an unacknowledged end-event notice on a fixed
// cadence until Acknowledge is called. It is the accountability half of
// hard mode: the alert does not go away on its own.
type Repeater struct {
	mu       sync.Mutex
	interval time.Duration
	out      chan Notice
	wakeup   chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	active   *Notice
	started  bool
	stopped  bool
	dropped  uint64
}

func NewRepeater(interval time.Duration, bufferSize int) *Repeater {
	if interval <= 0 {
		interval = DefaultRepeatInterval
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Repeater{
		interval: interval,
		out:      make(chan Notice, bufferSize),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// C delivers the repeated notices. Slow consumers drop re-alerts rather
// than block the loop.
func (r *Repeater) C() <-chan Notice {
	return r.out
}

func (r *Repeater) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	go r.loop()
}

func (r *Repeater) Stop() {
	r.mu.Lock()
	if !r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	close(r.stopCh)
	r.mu.Unlock()
	<-r.doneCh
}

// Arm begins repeating the notice. Only end events repeat; anything else
// is ignored. Arming replaces a previously armed notice.
func (r *Repeater) Arm(n Notice) {
	if !n.Event.IsEndEvent() {
		return
	}
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.active = &n
	r.mu.Unlock()
	r.signalWakeup()
}

// Acknowledge clears the armed notice and stops the repeat. Idempotent.
func (r *Repeater) Acknowledge() {
	r.mu.Lock()
	r.active = nil
	r.mu.Unlock()
	r.signalWakeup()
}

// Pending reports whether an unacknowledged notice is armed.
func (r *Repeater) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

func (r *Repeater) Dropped() uint64 {
	return atomic.LoadUint64(&r.dropped)
}

func (r *Repeater) loop() {
	defer close(r.doneCh)
	defer close(r.out)

	timer := time.NewTimer(r.interval)
	stopTimer(timer)
	for {
		// Emission happens under the lock so Acknowledge cannot race a
		// stale notice out after it returns.
		r.mu.Lock()
		if r.active == nil {
			r.mu.Unlock()
			select {
			case <-r.wakeup:
				continue
			case <-r.stopCh:
				return
			}
		}
		select {
		case r.out <- *r.active:
		default:
			atomic.AddUint64(&r.dropped, 1)
		}
		r.mu.Unlock()

		timer.Reset(r.interval)
		select {
		case <-timer.C:
		case <-r.wakeup:
			stopTimer(timer)
		case <-r.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (r *Repeater) signalWakeup() {
	select {
	case r.wakeup <- struct{}{}:
	default:
	}
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
