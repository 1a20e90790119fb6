package worker

import (
	"context"
	"time"

	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/internal/crawler"
	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/pkg/errors"
	"sjsage522/wishlistwatcher/services/notifier"
	"sjsage522/wishlistwatcher/services/store"

	"golang.org/x/time/rate"
)

// saveTimeout bounds the snapshot save, which also runs while shutting down
const saveTimeout = 10 * time.Second

// Settings tunes the poll loop
type Settings struct {
	PollInterval       time.Duration
	FetchesPerMinute   int
	NotifyTitleUpdates bool
}

// RoundStats summarizes one pass over all wishlist URLs
type RoundStats struct {
	Sources  int
	Failed   int
	Events   map[wishlist.EventKind]int
	Notified int
}

// Worker owns the snapshot and drives fetch, classify, notify and persist
type Worker struct {
	ctx      context.Context
	crawlers []crawler.Crawler
	store    store.Store
	notifier notifier.Notifier
	logger   helpers.LoggerInterface
	settings Settings
	limiter  *rate.Limiter
	snapshot wishlist.Snapshot
	loaded   bool
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	crawlers []crawler.Crawler,
	st store.Store,
	n notifier.Notifier,
	logger helpers.LoggerInterface,
	settings Settings,
) *Worker {
	limit := rate.Inf
	if settings.FetchesPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(settings.FetchesPerMinute))
	}

	return &Worker{
		ctx:      ctx,
		crawlers: crawlers,
		store:    st,
		notifier: n,
		logger:   logger,
		settings: settings,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Snapshot returns a copy of the in-memory snapshot
func (w *Worker) Snapshot() wishlist.Snapshot {
	return w.snapshot.Clone()
}

// LoadSnapshot reads the persisted snapshot into memory
func (w *Worker) LoadSnapshot() error {
	snapshot, err := w.store.Load(w.ctx)
	if err != nil {
		return err
	}
	w.snapshot = snapshot
	w.loaded = true
	w.logger.LogInfo("Loaded snapshot with %d items", len(snapshot))
	return nil
}

// Start loads the snapshot and polls until the context is canceled
func (w *Worker) Start() error {
	if !w.loaded {
		if err := w.LoadSnapshot(); err != nil {
			return err
		}
	}

	for {
		start := time.Now()
		stats, err := w.RunRound()
		if err != nil {
			w.logFailure("snapshot", err)
		}
		w.logger.LogInfo("Round finished in %s: %d/%d sources ok, %d notified",
			time.Since(start).Round(time.Millisecond), stats.Sources-stats.Failed, stats.Sources, stats.Notified)

		timer := time.NewTimer(w.settings.PollInterval)
		select {
		case <-w.ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// RunRound processes every wishlist once, then saves the snapshot.
// The persisted snapshot is loaded first if that has not happened yet.
// Failed sources are skipped. The in-memory snapshot is updated even
// when saving fails; the save error is returned.
func (w *Worker) RunRound() (RoundStats, error) {
	stats := RoundStats{Events: make(map[wishlist.EventKind]int)}
	if !w.loaded {
		if err := w.LoadSnapshot(); err != nil {
			return stats, err
		}
	}
	working := w.snapshot
	if working == nil {
		working = wishlist.Snapshot{}
	}

	for _, c := range w.crawlers {
		if w.ctx.Err() != nil {
			break
		}
		if err := w.limiter.Wait(w.ctx); err != nil {
			break
		}

		stats.Sources++
		updates, ok := w.processSource(c, working, &stats)
		if !ok {
			stats.Failed++
			continue
		}
		working = working.Merge(updates)
	}

	w.snapshot = working

	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), saveTimeout)
	defer cancel()
	if err := w.store.Save(ctx, working); err != nil {
		return stats, err
	}
	return stats, nil
}

// processSource fetches and classifies one wishlist against the working snapshot
func (w *Worker) processSource(c crawler.Crawler, working wishlist.Snapshot, stats *RoundStats) (map[string]wishlist.Entry, bool) {
	source := c.GetURL()

	listings, err := c.FetchListings(w.ctx)
	if err != nil {
		w.logFailure(source, err)
		return nil, false
	}
	w.logger.LogInfo("Found %d items on %s", len(listings), source)

	events, updates := wishlist.Classify(listings, working)
	for _, event := range events {
		stats.Events[event.Kind]++
		if !w.shouldNotify(event) {
			continue
		}

		if err := w.notifier.Notify(w.ctx, notifier.NewNotification(source, event)); err != nil {
			w.logFailure(source, err)
			continue
		}
		stats.Notified++
	}

	return updates, true
}

// logFailure logs failures that a later round may clear as warnings
func (w *Worker) logFailure(source string, err error) {
	if errors.IsRetryable(err) {
		w.logger.LogWarn(source, err)
		return
	}
	w.logger.LogError(source, err)
}

func (w *Worker) shouldNotify(event wishlist.Event) bool {
	switch event.Kind {
	case wishlist.EventNew, wishlist.EventPriceDrop, wishlist.EventPriceUp:
		return true
	case wishlist.EventTitleUpdated:
		return w.settings.NotifyTitleUpdates
	default:
		return false
	}
}
