package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
)

// app is the object graph every command starts from: an engine loaded from
// the configured source and an executor over it.
type app struct {
	cfg      *config.Config
	metrics  *metrics.Metrics
	engine   *indexer.Engine
	exec     *executor.Executor
	postgres *postgres.Client
	closers  []func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg, metrics: metrics.New()}

	engine, err := indexer.NewEngine(cfg.Index, indexer.WithMetrics(a.metrics))
	if err != nil {
		return nil, err
	}
	a.engine = engine
	a.exec = executor.New(engine, cfg.Search, executor.WithMetrics(a.metrics))

	src, err := a.source(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	if src != nil {
		if _, err := loader.Apply(ctx, src, engine); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

// source builds the configured document source; nil means start empty.
func (a *app) source(ctx context.Context) (loader.Source, error) {
	switch a.cfg.Source.Kind {
	case config.SourceFile:
		return loader.NewFileSource(a.cfg.Source.Path), nil
	case config.SourcePostgres:
		client, err := postgres.New(ctx, a.cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connecting document source: %w", err)
		}
		a.postgres = client
		a.closers = append(a.closers, client.Close)
		return loader.NewPostgresSource(client.DB), nil
	default:
		return nil, nil
	}
}

// searcher wraps the executor in the result cache. The local tier follows
// search.cacheSize; the Redis tier is added when enabled and reachable and
// is shared by every process that loaded the same documents.
func (a *app) searcher(ctx context.Context) *cache.Searcher {
	log := logger.FromContext(ctx)
	var opts []cache.Option
	opts = append(opts, cache.WithMetrics(a.metrics))
	if a.cfg.Search.CacheSize > 0 {
		opts = append(opts, cache.WithLocal(cache.NewLocalStore(a.cfg.Search.CacheSize)))
	}
	if a.cfg.Redis.Enabled {
		client, err := pkgredis.NewClient(ctx, a.cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, shared result cache disabled", "error", err)
		} else {
			a.closers = append(a.closers, client.Close)
			opts = append(opts, cache.WithRemote(client))
			log.Info("shared result cache enabled",
				"addr", a.cfg.Redis.Addr,
				"ttl", a.cfg.Redis.CacheTTL,
			)
		}
	}
	return cache.New(a.exec, cache.Config{TTL: a.cfg.Redis.CacheTTL}, opts...)
}

func (a *app) requestQueue(s analytics.Searcher) *analytics.RequestQueue {
	return analytics.NewRequestQueue(s, a.cfg.Search.RequestWindow, analytics.WithMetrics(a.metrics))
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
