// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"time"

	"feedback-intel-go/internal/generator"
	"feedback-intel-go/internal/livesource"
	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/metrics"
	"feedback-intel-go/internal/session"
	"feedback-intel-go/internal/types"
)

// Options tune a Feed. AutoRefresh is the bucket width used when a caller
// asks for auto-refresh; <= 0 disables it.
type Options struct {
	CorpusSize  int
	AutoRefresh time.Duration
	// Seed pins the synthetic batches; nil means a fresh batch every refresh.
	Seed *int64
}

// Result is one view of the feed.
type Result struct {
	Records     []types.Record `json:"-"`
	LastRefresh time.Time      `json:"last_refresh"`
	Live        bool           `json:"live"`
}

// Feed serves records to the dashboard: live data when the source has any,
// otherwise a synthetic batch. Either kind is cached per session and only
// changes on refresh or when its auto-refresh bucket runs out.
type Feed struct {
	source livesource.Source
	cfg    types.LiveSourceConfig
	store  session.Store
	opts   Options
	log    *logger.Logger
}

func NewFeed(source livesource.Source, cfg types.LiveSourceConfig, store session.Store, opts Options, log *logger.Logger) *Feed {
	if opts.CorpusSize < 0 {
		opts.CorpusSize = 0
	}
	return &Feed{
		source: source,
		cfg:    cfg,
		store:  store,
		opts:   opts,
		log:    log.Component("pipeline.feed"),
	}
}

// Records returns the current batch for a session. With autoRefresh set, a
// batch from an earlier time bucket is replaced.
func (f *Feed) Records(ctx context.Context, sessionID string, now time.Time, autoRefresh bool) Result {
	log := f.log.WithField("session", sessionID)
	snap, ok, err := f.store.Get(ctx, sessionID)
	switch {
	case err != nil:
		metrics.SessionCache.WithLabelValues("error").Inc()
		log.WithField("error", err.Error()).Warn("session cache read failed; reloading")
	case !ok:
		metrics.SessionCache.WithLabelValues("miss").Inc()
	case autoRefresh && f.opts.AutoRefresh > 0 && snap.Tick != f.tick(now):
		metrics.SessionCache.WithLabelValues("expired").Inc()
		log.Debug("auto-refresh bucket elapsed")
	default:
		metrics.SessionCache.WithLabelValues("hit").Inc()
		return Result{Records: snap.Records, LastRefresh: snap.LastRefresh, Live: snap.Live}
	}
	return f.load(ctx, sessionID, now)
}

// Refresh discards the session's batch and loads a new one.
func (f *Feed) Refresh(ctx context.Context, sessionID string, now time.Time) Result {
	if err := f.store.Invalidate(ctx, sessionID); err != nil {
		f.log.WithError(err).WithField("session", sessionID).Warn("session invalidate failed")
	}
	return f.load(ctx, sessionID, now)
}

// load asks the live source first and falls back to the generator, then
// caches whichever batch it got.
func (f *Feed) load(ctx context.Context, sessionID string, now time.Time) Result {
	records := f.source.Fetch(ctx, f.cfg)
	live := len(records) > 0
	if live {
		metrics.LiveFetch.WithLabelValues("records").Inc()
	} else {
		metrics.LiveFetch.WithLabelValues("empty").Inc()
		start := time.Now()
		records = generator.Generate(f.opts.CorpusSize, now, f.opts.Seed)
		metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	}
	for _, r := range records {
		metrics.RecordsClassified.WithLabelValues(r.ProductArea, r.IssueType).Inc()
	}

	snap := session.Snapshot{Records: records, LastRefresh: now, Tick: f.tick(now), Live: live}
	if err := f.store.Put(ctx, sessionID, snap); err != nil {
		f.log.WithError(err).WithField("session", sessionID).Warn("session cache write failed")
	}
	f.log.WithField("session", sessionID).
		WithField("records", len(records)).
		WithField("live", live).
		Info("feed loaded")
	return Result{Records: records, LastRefresh: now, Live: live}
}

func (f *Feed) tick(now time.Time) int64 {
	if f.opts.AutoRefresh <= 0 {
		return 0
	}
	secs := int64(f.opts.AutoRefresh / time.Second)
	if secs < 1 {
		secs = 1
	}
	return now.Unix() / secs
}
