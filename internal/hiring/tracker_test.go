package hiring

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker() (*Tracker, *manualClock) {
	clock := &manualClock{}
	return New(Options{Clock: clock}), clock
}

func TestTracker_HireCompletesAfterDelay(t *testing.T) {
	tr, clock := newTestTracker()

	require.True(t, tr.Hire("a"))
	assert.Equal(t, Hiring, tr.State("a"))
	assert.Equal(t, Idle, tr.State("b"))

	clock.Advance(DefaultHireDelay - time.Millisecond)
	assert.Equal(t, Hiring, tr.State("a"))
	_, ok := tr.Notices().Current()
	assert.False(t, ok)

	clock.Advance(time.Millisecond)
	assert.Equal(t, Idle, tr.State("a"))
	msg, ok := tr.Notices().Current()
	require.True(t, ok)
	assert.Equal(t, SuccessMessage, msg)

	clock.Advance(DefaultNoticeTTL)
	_, ok = tr.Notices().Current()
	assert.False(t, ok)
}

func TestTracker_HireIsIdempotentWhileHiring(t *testing.T) {
	tr, clock := newTestTracker()

	require.True(t, tr.Hire("a"))
	pending, timers := tr.Pending(), clock.Active()

	assert.False(t, tr.Hire("a"))
	assert.Equal(t, Hiring, tr.State("a"))
	assert.Equal(t, pending, tr.Pending())
	assert.Equal(t, timers, clock.Active())

	clock.Advance(DefaultHireDelay)
	assert.True(t, tr.Hire("a"), "an Idle item can be hired again")
}

func TestTracker_ConcurrentItemsHaveIndependentTimers(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Hire("a")
	clock.Advance(500 * time.Millisecond)
	tr.Hire("b")
	assert.Equal(t, []string{"a", "b"}, tr.Hiring())

	clock.Advance(1500 * time.Millisecond)
	assert.Equal(t, []string{"b"}, tr.Hiring())

	clock.Advance(500 * time.Millisecond)
	assert.Empty(t, tr.Hiring())
	assert.Equal(t, 0, tr.Pending())
}

func TestTracker_SingleNotificationSlot(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Hire("a")
	clock.Advance(time.Second)
	tr.Hire("b")
	clock.Advance(time.Second) // a completes at 2s
	clock.Advance(time.Second) // b completes at 3s

	assert.Equal(t, 1, clock.Active(), "one clear timer per visible notification")

	// The clear timer restarted at b's completion, so a's would-be clear at
	// 5s must not blank the slot.
	clock.Advance(2 * time.Second)
	_, ok := tr.Notices().Current()
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = tr.Notices().Current()
	assert.False(t, ok)
}

func TestTracker_RetainDropsRemovedItems(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Hire("a")
	tr.Hire("b")
	assert.Equal(t, 1, tr.Retain([]string{"a", "c"}))
	assert.Equal(t, Idle, tr.State("b"))
	assert.Equal(t, []string{"a"}, tr.Hiring())

	// b's timer still fires; its completion is ignored. a still notifies.
	tr.Notices().Clear()
	clock.Advance(DefaultHireDelay)
	msg, ok := tr.Notices().Current()
	assert.True(t, ok)
	assert.Equal(t, SuccessMessage, msg)
}

func TestTracker_ForgottenCompletionPostsNothing(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Hire("a")
	tr.Retain(nil)
	clock.Advance(DefaultHireDelay)

	_, ok := tr.Notices().Current()
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Pending())
}

func TestTracker_RehireAfterRetainIgnoresStaleTimer(t *testing.T) {
	tr, clock := newTestTracker()

	tr.Hire("a")
	clock.Advance(time.Second)
	tr.Retain(nil)
	require.True(t, tr.Hire("a"))

	// The first timer fires at 2s but belongs to the forgotten entry.
	clock.Advance(time.Second)
	assert.Equal(t, Hiring, tr.State("a"))

	clock.Advance(time.Second)
	assert.Equal(t, Idle, tr.State("a"))
}

func TestTracker_OnChange(t *testing.T) {
	tr, clock := newTestTracker()
	var changes atomic.Int32
	tr.SetOnChange(func() { changes.Add(1) })

	tr.Hire("a")
	assert.EqualValues(t, 1, changes.Load())
	tr.Hire("a")
	assert.EqualValues(t, 1, changes.Load(), "ignored hire is not a change")

	clock.Advance(DefaultHireDelay)
	assert.EqualValues(t, 2, changes.Load())

	clock.Advance(DefaultNoticeTTL)
	assert.EqualValues(t, 3, changes.Load())
}

func TestTracker_CustomDelays(t *testing.T) {
	clock := &manualClock{}
	tr := New(Options{Clock: clock, Delay: 100 * time.Millisecond, NoticeTTL: 50 * time.Millisecond})

	tr.Hire("a")
	clock.Advance(100 * time.Millisecond)
	_, ok := tr.Notices().Current()
	assert.True(t, ok)
	clock.Advance(50 * time.Millisecond)
	_, ok = tr.Notices().Current()
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "hiring", Hiring.String())
}

func TestTracker_LogsElapsedFromClock(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	clock := &manualClock{}
	tr := New(Options{Clock: clock, Log: logger})

	require.True(t, tr.Hire("a"))
	clock.Advance(DefaultHireDelay)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "hiring completed", entry.Message)
	assert.Equal(t, "a", entry.Data["item"])
	assert.Equal(t, DefaultHireDelay.String(), entry.Data["elapsed"])
}
