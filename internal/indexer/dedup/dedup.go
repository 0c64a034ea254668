// Package dedup removes documents whose distinct term set repeats an earlier
// document's.
package dedup

import (
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type Option func(*options)

type options struct {
	metrics *metrics.Metrics
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// RemoveDuplicates scans documents in ascending id order and removes every
// document whose set of distinct terms was already seen, keeping the
// lowest id. Term frequencies are ignored. It returns the removed ids in
// ascending order.
func RemoveDuplicates(engine *indexer.Engine, opts ...Option) []int {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.WithComponent("dedup")

	var duplicates []int
	engine.View(func(v *index.ReadView) {
		seen := make(map[string]int)
		for _, id := range v.DocumentIDs() {
			// terms never contain spaces, so joining on one is unambiguous
			key := strings.Join(v.Terms(id), " ")
			if first, ok := seen[key]; ok {
				log.Info("found duplicate document id", "doc_id", id, "duplicate_of", first)
				duplicates = append(duplicates, id)
				continue
			}
			seen[key] = id
		}
	})

	for _, id := range duplicates {
		engine.RemoveDocument(id)
	}
	if o.metrics != nil {
		o.metrics.DuplicatesRemovedTotal.Add(float64(len(duplicates)))
	}
	if duplicates == nil {
		return []int{}
	}
	return duplicates
}
