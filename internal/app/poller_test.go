package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/logging"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 100, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, want within (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

type countingLoader struct {
	mu       sync.Mutex
	calls    int
	failures int
	err      error
}

func (l *countingLoader) LoadAll(context.Context) ([]catalog.Item, []catalog.Category, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		l.failures++
		return nil, nil, l.err
	}
	l.failures = 0
	return nil, nil, nil
}

func (l *countingLoader) Snapshot() catalog.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return catalog.Snapshot{ConsecutiveFailures: l.failures}
}

func (l *countingLoader) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func TestStartPoller_ReloadsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := &countingLoader{}
	StartPoller(ctx, loader, 5*time.Millisecond, logging.Discard())

	require.Eventually(t, func() bool { return loader.Calls() >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	// Let an in-flight tick drain, then verify the loop stopped.
	time.Sleep(20 * time.Millisecond)
	stopped := loader.Calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, loader.Calls())
}

func TestRefresh_ReportsConsecutiveFailures(t *testing.T) {
	loader := &countingLoader{err: errors.New("connection refused")}
	log := logging.Discard()

	assert.Equal(t, 1, refresh(context.Background(), loader, log))
	assert.Equal(t, 2, refresh(context.Background(), loader, log))

	loader.err = nil
	assert.Equal(t, 0, refresh(context.Background(), loader, log))
}
