// Package merger combines per-query result lists.
package merger

import "github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"

// Join concatenates results in order, keeping each list's internal order.
func Join(results [][]ranker.Document) []ranker.Document {
	total := 0
	for _, docs := range results {
		total += len(docs)
	}
	out := make([]ranker.Document, 0, total)
	for _, docs := range results {
		out = append(out, docs...)
	}
	return out
}
