package executor

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/merger"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
)

// Finder answers one query with the default status filter. The caching
// searcher and the request queue provide one that layers on top of the
// executor.
type Finder func(raw string) ([]ranker.Document, error)

// ProcessQueries runs FindTopDocumentsDefault for every query concurrently.
// Result i belongs to queries[i]. The first failing query fails the batch.
func (e *Executor) ProcessQueries(ctx context.Context, queries []string) ([][]ranker.Document, error) {
	return e.ProcessQueriesWith(ctx, queries, e.FindTopDocumentsDefault)
}

// ProcessQueriesWith is ProcessQueries answering each query through find.
// find must be safe for concurrent use.
func (e *Executor) ProcessQueriesWith(ctx context.Context, queries []string, find Finder) ([][]ranker.Document, error) {
	results := make([][]ranker.Document, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	limit := e.cfg.MaxConcurrentQueries
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, query := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			docs, err := find(query)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.BatchQueriesTotal.Add(float64(len(queries)))
	}
	e.logger.Debug("batch processed", "queries", len(queries), "workers", limit)
	return results, nil
}

// ProcessQueriesJoined is ProcessQueries flattened into one sequence: all of
// query 0's documents, then query 1's, and so on.
func (e *Executor) ProcessQueriesJoined(ctx context.Context, queries []string) ([]ranker.Document, error) {
	return e.ProcessQueriesJoinedWith(ctx, queries, e.FindTopDocumentsDefault)
}

func (e *Executor) ProcessQueriesJoinedWith(ctx context.Context, queries []string, find Finder) ([]ranker.Document, error) {
	results, err := e.ProcessQueriesWith(ctx, queries, find)
	if err != nil {
		return nil, err
	}
	return merger.Join(results), nil
}
