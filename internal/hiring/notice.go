package hiring

import (
	"sync"
	"time"
)

// Notifier holds the single process-wide notification slot. Showing a new
// message replaces the current one and restarts its clear timer.
type Notifier struct {
	clock Clock
	ttl   time.Duration

	mu       sync.Mutex
	text     string
	seq      uint64
	timer    Timer
	onChange func()
}

// NewNotifier builds a Notifier whose messages clear after ttl.
func NewNotifier(clock Clock, ttl time.Duration) *Notifier {
	if clock == nil {
		clock = SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notifier{clock: clock, ttl: ttl}
}

// SetOnChange registers fn to run after the slot changes. fn runs without
// the notifier's lock held and may be called from timer goroutines.
func (n *Notifier) SetOnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

// Show places msg in the slot.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	n.text = msg
	n.seq++
	seq := n.seq
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(seq) })
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text, n.text != ""
}

// Clear empties the slot immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	changed := n.text != ""
	n.text = ""
	fn := n.onChange
	n.mu.Unlock()

	if changed && fn != nil {
		fn()
	}
}

// expire clears the slot if no newer message was shown since seq.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	if seq != n.seq {
		n.mu.Unlock()
		return
	}
	n.text = ""
	n.timer = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}
