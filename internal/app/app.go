package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/showcase/internal/backend"
	"github.com/five82/showcase/internal/catalog"
	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/hiring"
	"github.com/five82/showcase/internal/logging"
	"github.com/five82/showcase/internal/prefs"
	"github.com/five82/showcase/internal/session"
	"github.com/five82/showcase/internal/ui"
)

// Options configure the Showcase application.
type Options struct {
	ConfigPath string
	PollEvery  time.Duration // zero uses the configured poll_interval
}

// Run boots the Showcase TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger, closeLog, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closeLog() }()
	log := logger.WithField("component", "app")

	userPrefs, err := prefs.Load(cfg.PrefsPath)
	if err != nil {
		log.WithError(err).Warn("using default preferences")
	}

	sess, err := session.Load(cfg.SessionPath)
	if err != nil {
		log.WithError(err).Warn("discarding saved session")
	}

	client, err := backend.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}
	client.SetTokenSource(sess)

	store := catalog.NewStore(catalog.NewAdapter(client), logger)
	tracker := hiring.New(hiring.Options{
		Delay:     cfg.HireDelay,
		NoticeTTL: cfg.NoticeTTL,
		Log:       logger,
	})

	log.WithFields(logrus.Fields{
		"api_url":       client.BaseURL(),
		"poll_interval": cfg.PollInterval.String(),
		"signed_in":     sess.Authenticated(),
	}).Info("starting")

	// Populate the store before the UI starts; failures show in the listing.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	if _, _, err := store.LoadAll(loadCtx); err != nil {
		log.WithError(err).Warn("initial catalog load failed")
	}
	cancel()

	StartPoller(ctx, store, cfg.PollInterval, logger)

	err = ui.Run(ui.Options{
		Context:        ctx,
		Store:          store,
		Tracker:        tracker,
		Session:        sess,
		Auth:           client,
		Log:            logger,
		LogFile:        cfg.LogFile,
		RequestTimeout: cfg.RequestTimeout,
		Prefs:          userPrefs,
		PrefsPath:      cfg.PrefsPath,
	})
	log.WithField("pending_hires", tracker.Pending()).Info("stopped")
	return err
}
