// Package analytics tracks how many recent search requests came back empty.
package analytics

import (
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

// DefaultWindow is the number of requests remembered: one per minute of a day.
const DefaultWindow = 1440

// Searcher is the search surface the queue records. Both the executor and the
// caching searcher satisfy it.
type Searcher interface {
	FindTopDocuments(raw string, predicate executor.Predicate) ([]ranker.Document, error)
	FindTopDocumentsByStatus(raw string, status index.Status) ([]ranker.Document, error)
}

// RequestQueue forwards searches and remembers, for the last window
// requests, which ones returned nothing. Requests that fail to parse are not
// recorded.
type RequestQueue struct {
	searcher Searcher
	metrics  *metrics.Metrics

	mu        sync.Mutex
	empty     []bool
	next      int
	size      int
	noResults int
}

type Option func(*RequestQueue)

// WithMetrics mirrors the no-result count into the NoResultRequests gauge.
func WithMetrics(m *metrics.Metrics) Option {
	return func(q *RequestQueue) {
		q.metrics = m
	}
}

// NewRequestQueue creates a queue remembering window requests; window <= 0
// selects DefaultWindow.
func NewRequestQueue(searcher Searcher, window int, opts ...Option) *RequestQueue {
	if window <= 0 {
		window = DefaultWindow
	}
	q := &RequestQueue{
		searcher: searcher,
		empty:    make([]bool, window),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *RequestQueue) AddFindRequest(raw string, predicate executor.Predicate) ([]ranker.Document, error) {
	docs, err := q.searcher.FindTopDocuments(raw, predicate)
	if err != nil {
		return nil, err
	}
	q.record(len(docs) == 0)
	return docs, nil
}

func (q *RequestQueue) AddFindRequestByStatus(raw string, status index.Status) ([]ranker.Document, error) {
	docs, err := q.searcher.FindTopDocumentsByStatus(raw, status)
	if err != nil {
		return nil, err
	}
	q.record(len(docs) == 0)
	return docs, nil
}

func (q *RequestQueue) AddFindRequestDefault(raw string) ([]ranker.Document, error) {
	return q.AddFindRequestByStatus(raw, index.StatusActual)
}

// NoResultRequests returns how many remembered requests returned nothing.
func (q *RequestQueue) NoResultRequests() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.noResults
}

// Len returns the number of remembered requests, at most the window.
func (q *RequestQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}

func (q *RequestQueue) record(empty bool) {
	q.mu.Lock()
	if q.size == len(q.empty) {
		if q.empty[q.next] {
			q.noResults--
		}
	} else {
		q.size++
	}
	q.empty[q.next] = empty
	if empty {
		q.noResults++
	}
	q.next = (q.next + 1) % len(q.empty)
	// set under the lock so concurrent batch requests cannot publish a stale count
	if q.metrics != nil {
		q.metrics.NoResultRequests.Set(float64(q.noResults))
	}
	q.mu.Unlock()
}
