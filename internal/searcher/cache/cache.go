// Package cache memoizes status-filtered search results. Entries are keyed by
// the normalized query, the status filter and the engine fingerprint, so any
// add or remove makes older entries unreachable without an explicit flush,
// and separate processes holding the same documents share Redis entries.
// Results live in an in-process LRU and, when configured, in Redis behind a
// circuit breaker; concurrent misses for one key share a single evaluation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/resilience"
)

const (
	keyPrefix        = "search:"
	defaultTTL       = time.Minute
	defaultOpTimeout = 250 * time.Millisecond
)

type Config struct {
	TTL       time.Duration
	OpTimeout time.Duration
}

// Searcher caches FindTopDocumentsByStatus on top of an Executor. Calls with
// an arbitrary predicate cannot be keyed and go straight to the executor.
type Searcher struct {
	exec    *executor.Executor
	local   Store
	remote  Store
	breaker *resilience.Breaker
	cfg     Config
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Searcher)

// WithLocal adds an in-process tier checked before the remote one.
func WithLocal(s Store) Option {
	return func(c *Searcher) {
		c.local = s
	}
}

// WithRemote adds a shared tier, usually a Redis client.
func WithRemote(s Store) Option {
	return func(c *Searcher) {
		c.remote = s
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Searcher) {
		c.metrics = m
	}
}

// New wraps exec.
func New(exec *executor.Executor, cfg Config, opts ...Option) *Searcher {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.OpTimeout <= 0 {
		cfg.OpTimeout = defaultOpTimeout
	}
	c := &Searcher{
		exec:    exec,
		cfg:     cfg,
		breaker: resilience.NewBreaker("result-cache", resilience.BreakerConfig{}),
		logger:  logger.WithComponent("query-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Searcher) FindTopDocuments(raw string, predicate executor.Predicate) ([]ranker.Document, error) {
	return c.exec.FindTopDocuments(raw, predicate)
}

// FindTopDocumentsByStatus serves from cache when possible. Invalid queries
// are never cached; the executor reports the error.
func (c *Searcher) FindTopDocumentsByStatus(raw string, status index.Status) ([]ranker.Document, error) {
	q, err := parser.Parse(raw, c.exec.Engine().StopWords())
	if err != nil {
		return c.exec.FindTopDocumentsByStatus(raw, status)
	}
	engine := c.exec.Engine()
	fingerprint := engine.Fingerprint()
	key := buildKey(q, status, fingerprint)

	if docs, ok := c.get(key); ok {
		c.hit()
		return docs, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		if docs, ok := c.get(key); ok {
			c.hit()
			return docs, nil
		}
		c.miss()
		docs, err := c.exec.FindTopDocumentsByStatus(raw, status)
		if err != nil {
			return nil, err
		}
		// a mutation during evaluation means docs may not match key
		if engine.Fingerprint() == fingerprint {
			c.set(key, docs)
		} else {
			c.logger.Debug("index changed during search, result not cached", "query", raw)
		}
		return docs, nil
	})
	if err != nil {
		return nil, err
	}
	docs := val.([]ranker.Document)
	return append([]ranker.Document(nil), docs...), nil
}

func (c *Searcher) FindTopDocumentsDefault(raw string) ([]ranker.Document, error) {
	return c.FindTopDocumentsByStatus(raw, index.StatusActual)
}

// Invalidate drops every cached result in both tiers, including Redis
// entries written by other processes.
func (c *Searcher) Invalidate(ctx context.Context) error {
	for _, s := range []Store{c.local, c.remote} {
		if s == nil {
			continue
		}
		n, err := s.DeletePrefix(ctx, keyPrefix)
		if err != nil {
			return fmt.Errorf("invalidating cache: %w", err)
		}
		c.logger.Debug("cache invalidated", "keys_deleted", n)
	}
	return nil
}

func (c *Searcher) get(key string) ([]ranker.Document, bool) {
	if c.local != nil {
		if docs, ok := c.read(c.local, key); ok {
			return docs, true
		}
	}
	if c.remote == nil {
		return nil, false
	}
	var (
		docs []ranker.Document
		ok   bool
	)
	err := c.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), c.cfg.OpTimeout)
		defer cancel()
		data, err := c.remote.Get(ctx, key)
		if errors.Is(err, pkgredis.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		docs, ok = c.decode(key, data)
		return nil
	})
	if err != nil {
		c.logger.Warn("remote cache get failed", "error", err)
		return nil, false
	}
	if ok && c.local != nil {
		c.write(c.local, key, docs)
	}
	return docs, ok
}

func (c *Searcher) read(s Store, key string) ([]ranker.Document, bool) {
	data, err := s.Get(context.Background(), key)
	if err != nil {
		return nil, false
	}
	return c.decode(key, data)
}

func (c *Searcher) decode(key string, data []byte) ([]ranker.Document, bool) {
	var docs []ranker.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return nil, false
	}
	if docs == nil {
		docs = []ranker.Document{}
	}
	return docs, true
}

func (c *Searcher) set(key string, docs []ranker.Document) {
	if c.local != nil {
		c.write(c.local, key, docs)
	}
	if c.remote == nil {
		return
	}
	err := c.breaker.Execute(func() error {
		return c.write(c.remote, key, docs)
	})
	if err != nil {
		c.logger.Warn("remote cache set failed", "error", err)
	}
}

func (c *Searcher) write(s Store, key string, docs []ranker.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("marshaling cached results: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.OpTimeout)
	defer cancel()
	return s.Set(ctx, key, data, c.cfg.TTL)
}

func (c *Searcher) hit() {
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *Searcher) miss() {
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}

func buildKey(q *parser.Query, status index.Status, fingerprint string) string {
	raw := fmt.Sprintf("%s|status=%s|index=%s", q.Normalized(), status, fingerprint)
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
