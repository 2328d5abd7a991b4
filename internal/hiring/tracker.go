package hiring

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/logging"
)

const (
	// DefaultHireDelay is how long an item stays in Hiring.
	DefaultHireDelay = 2 * time.Second
	// DefaultNoticeTTL is how long a notification stays visible.
	DefaultNoticeTTL = 3 * time.Second
	// SuccessMessage is posted when a hiring completes.
	SuccessMessage = "Service hired successfully!"
)

// State is an item's hiring state.
type State int

const (
	Idle State = iota
	Hiring
)

func (s State) String() string {
	switch s {
	case Hiring:
		return "hiring"
	default:
		return "idle"
	}
}

// Options configures a Tracker. Zero values use the defaults.
type Options struct {
	Clock     Clock
	Delay     time.Duration
	NoticeTTL time.Duration
	Log       logrus.FieldLogger
}

// Tracker runs the per-item Idle -> Hiring -> Idle state machine. It never
// touches the catalog; it only keys auxiliary state by item id.
type Tracker struct {
	clock   Clock
	delay   time.Duration
	notices *Notifier
	log     logrus.FieldLogger

	mu       sync.Mutex
	entries  map[string]*entry
	onChange func()
}

// entry is one scheduled Hiring -> Idle transition.
type entry struct {
	started time.Time
}

// New builds a Tracker with its own notification slot.
func New(opts Options) *Tracker {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultHireDelay
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	return &Tracker{
		clock:   opts.Clock,
		delay:   opts.Delay,
		notices: NewNotifier(opts.Clock, opts.NoticeTTL),
		log:     opts.Log.WithField("component", "hiring"),
		entries: make(map[string]*entry),
	}
}

// Notices exposes the notification slot written by completions.
func (t *Tracker) Notices() *Notifier {
	return t.notices
}

// SetOnChange registers fn to run after any hiring state or notification
// change. fn may be called from timer goroutines.
func (t *Tracker) SetOnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
	t.notices.SetOnChange(fn)
}

// Hire moves id from Idle to Hiring and schedules its completion. It returns
// false, changing nothing, when id is already Hiring.
func (t *Tracker) Hire(id string) bool {
	t.mu.Lock()
	if _, busy := t.entries[id]; busy {
		t.mu.Unlock()
		return false
	}
	e := &entry{started: t.clock.Now()}
	t.entries[id] = e
	t.clock.AfterFunc(t.delay, func() { t.complete(id, e) })
	fn := t.onChange
	t.mu.Unlock()

	t.log.WithField("item", id).Debug("hiring started")
	if fn != nil {
		fn()
	}
	return true
}

// State reports id's current state.
func (t *Tracker) State(id string) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[id]; ok {
		return Hiring
	}
	return Idle
}

// Hiring lists the ids currently Hiring, sorted.
func (t *Tracker) Hiring() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Pending returns the number of scheduled completions.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Retain forgets every id not in keep and returns how many were dropped.
// A forgotten item's timer still fires but its completion is ignored.
func (t *Tracker) Retain(keep []string) int {
	set := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		set[id] = struct{}{}
	}

	t.mu.Lock()
	dropped := 0
	for id := range t.entries {
		if _, ok := set[id]; !ok {
			delete(t.entries, id)
			dropped++
		}
	}
	fn := t.onChange
	t.mu.Unlock()

	if dropped > 0 {
		t.log.WithField("dropped", dropped).Debug("hiring state reset for removed items")
		if fn != nil {
			fn()
		}
	}
	return dropped
}

func (t *Tracker) complete(id string, e *entry) {
	t.mu.Lock()
	if t.entries[id] != e {
		t.mu.Unlock()
		return
	}
	delete(t.entries, id)
	t.mu.Unlock()

	t.log.WithFields(logrus.Fields{
		"item":    id,
		"elapsed": t.clock.Now().Sub(e.started).Round(time.Millisecond).String(),
	}).Info("hiring completed")
	// Show runs the change callback, which also covers the state change.
	t.notices.Show(SuccessMessage)
}
