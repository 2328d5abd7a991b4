package app

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/catalog"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// Loader reloads the catalog snapshot.
type Loader interface {
	LoadAll(ctx context.Context) ([]catalog.Item, []catalog.Category, error)
	Snapshot() catalog.Snapshot
}

// StartPoller launches a background goroutine that reloads the store every
// interval, backing off exponentially while loads fail. It returns
// immediately; the first reload happens one interval after the call.
func StartPoller(ctx context.Context, store Loader, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	log = log.WithField("component", "poller")
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			failures := refresh(ctx, store, log)
			next := calculateBackoff(failures, interval)
			if failures > 0 {
				log.WithFields(logrus.Fields{
					"failures": failures,
					"retry_in": next.String(),
				}).Debug("backing off")
			}
			timer.Reset(next)
		}
	}()
}

// refresh reloads the store and returns the consecutive failure count.
func refresh(ctx context.Context, store Loader, log logrus.FieldLogger) int {
	if _, _, err := store.LoadAll(ctx); err != nil {
		if ctx.Err() != nil {
			return 0
		}
		return store.Snapshot().ConsecutiveFailures
	}
	snap := store.Snapshot()
	log.WithFields(logrus.Fields{
		"items":      len(snap.Items),
		"categories": len(snap.Categories),
	}).Debug("catalog refreshed")
	return 0
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
