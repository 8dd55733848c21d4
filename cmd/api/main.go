package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"feedback-intel-go/internal/api"
	"feedback-intel-go/internal/config"
	"feedback-intel-go/internal/livesource"
	"feedback-intel-go/internal/logger"
	"feedback-intel-go/internal/metrics"
	"feedback-intel-go/internal/pipeline"
	"feedback-intel-go/internal/session"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.WithField("environment", cfg.Environment).Info("starting service")
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open session store")
	}
	defer closeStore()

	source := livesource.New(cfg.LiveSourceConfig(), cfg.DatasetPath, log)
	feed := pipeline.NewFeed(source, cfg.LiveSourceConfig(), store, pipeline.Options{
		CorpusSize:  cfg.CorpusSize,
		AutoRefresh: cfg.AutoRefresh(),
	}, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.New(feed, log).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}

// openStore uses Redis when an address is configured, otherwise an in-process
// store swept by a cron janitor.
func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (session.Store, func(), error) {
	if cfg.RedisAddr != "" {
		rs, err := session.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL())
		if err != nil {
			return nil, nil, err
		}
		log.WithField("redis_addr", cfg.RedisAddr).Info("using redis session store")
		return rs, func() { _ = rs.Close() }, nil
	}

	ms := session.NewMemoryStore(cfg.SessionTTL())
	janitor, err := session.StartJanitor(ms, cfg.SessionSweepSpec, log.Component("session.janitor"))
	if err != nil {
		return nil, nil, err
	}
	log.WithField("sweep", cfg.SessionSweepSpec).Info("using in-memory session store")
	return ms, func() { <-janitor.Stop().Done() }, nil
}
