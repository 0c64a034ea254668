// Package executor ranks documents against parsed queries. Ranking holds one
// read snapshot of the index for its whole duration and accumulates TF-IDF
// scores in a sharded accumulator so term passes can run in parallel.
package executor

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/accumulator"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// Predicate filters candidate documents. It may be called from several
// goroutines at once and must not call back into the engine.
type Predicate func(id int, status index.Status, rating int) bool

// StatusPredicate accepts documents whose status equals s.
func StatusPredicate(s index.Status) Predicate {
	return func(_ int, status index.Status, _ int) bool {
		return status == s
	}
}

type Executor struct {
	engine  *indexer.Engine
	cfg     config.SearchConfig
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Executor)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

func New(engine *indexer.Engine, cfg config.SearchConfig, opts ...Option) *Executor {
	e := &Executor{
		engine: engine,
		cfg:    cfg,
		logger: logger.WithComponent("query-executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Engine() *indexer.Engine {
	return e.engine
}

// FindTopDocuments returns at most MaxResultDocumentCount documents matching
// raw and accepted by predicate, best first.
func (e *Executor) FindTopDocuments(raw string, predicate Predicate) ([]ranker.Document, error) {
	start := time.Now()
	q, err := parser.Parse(raw, e.engine.StopWords())
	if err != nil {
		e.observe(start, nil, err)
		return nil, fmt.Errorf("parsing query %q: %w", raw, err)
	}
	docs := e.rank(q, predicate)
	e.observe(start, docs, nil)
	e.logger.Debug("query executed",
		"query", raw,
		"plus", q.Plus,
		"minus", q.Minus,
		"results", len(docs),
		"took", time.Since(start),
	)
	return docs, nil
}

func (e *Executor) FindTopDocumentsByStatus(raw string, status index.Status) ([]ranker.Document, error) {
	return e.FindTopDocuments(raw, StatusPredicate(status))
}

// FindTopDocumentsDefault searches ACTUAL documents only.
func (e *Executor) FindTopDocumentsDefault(raw string) ([]ranker.Document, error) {
	return e.FindTopDocumentsByStatus(raw, index.StatusActual)
}

// MatchDocument returns the plus terms of raw that occur in document id, in
// ascending order, and the document's status. The term list is empty when any
// minus term occurs in the document.
func (e *Executor) MatchDocument(raw string, id int) ([]string, index.Status, error) {
	var (
		matched []string
		status  index.Status
		err     error
	)
	e.engine.View(func(v *index.ReadView) {
		doc, ok := v.Document(id)
		if !ok {
			err = apperrors.Newf(apperrors.ErrOutOfRange, "document %d does not exist", id)
			return
		}
		status = doc.Status

		var q *parser.Query
		q, err = parser.Parse(raw, e.engine.StopWords())
		if err != nil {
			err = fmt.Errorf("parsing query %q: %w", raw, err)
			return
		}
		matched = make([]string, 0, len(q.Plus))
		for _, term := range q.Minus {
			if v.Contains(term, id) {
				return
			}
		}
		for _, term := range q.Plus {
			if v.Contains(term, id) {
				matched = append(matched, term)
			}
		}
	})
	if err != nil {
		return nil, 0, err
	}
	return matched, status, nil
}

func (e *Executor) rank(q *parser.Query, predicate Predicate) []ranker.Document {
	var docs []ranker.Document
	e.engine.View(func(v *index.ReadView) {
		total := v.DocCount()
		if total == 0 || q.IsEmpty() {
			return
		}
		acc := accumulator.New(accumulator.ShardCountFor(total))

		e.forEachTerm(q.Plus, func(term string) {
			postings, ok := v.Postings(term)
			if !ok {
				return
			}
			idf := ranker.InverseDocumentFrequency(total, len(postings))
			for id, tf := range postings {
				doc, _ := v.Document(id)
				if predicate(id, doc.Status, doc.Rating) {
					acc.Add(id, tf*idf)
				}
			}
		})
		// every add has finished before the first erase
		e.forEachTerm(q.Minus, func(term string) {
			postings, ok := v.Postings(term)
			if !ok {
				return
			}
			for id := range postings {
				acc.Erase(id)
			}
		})

		scores := acc.Drain()
		docs = make([]ranker.Document, 0, len(scores))
		for id, relevance := range scores {
			doc, _ := v.Document(id)
			docs = append(docs, ranker.Document{
				ID:        id,
				Relevance: relevance,
				Rating:    doc.Rating,
			})
		}
	})
	if docs == nil {
		return []ranker.Document{}
	}
	return ranker.Top(docs, ranker.MaxResultDocumentCount)
}

// forEachTerm runs fn once per term and returns when all calls are done.
func (e *Executor) forEachTerm(terms []string, fn func(term string)) {
	if !e.cfg.ParallelTerms || len(terms) < 2 {
		for _, term := range terms {
			fn(term)
		}
		return
	}
	var wg sync.WaitGroup
	for _, term := range terms {
		wg.Add(1)
		go func(t string) {
			defer wg.Done()
			fn(t)
		}(term)
	}
	wg.Wait()
}

func (e *Executor) observe(start time.Time, docs []ranker.Document, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.SearchLatency.Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		e.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultError).Inc()
	case len(docs) == 0:
		e.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultZeroResult).Inc()
		e.metrics.SearchResultsCount.Observe(0)
	default:
		e.metrics.SearchQueriesTotal.WithLabelValues(metrics.ResultHit).Inc()
		e.metrics.SearchResultsCount.Observe(float64(len(docs)))
	}
}
