// Package ranker defines the scored result type, the TF-IDF weight and the
// deterministic result ordering.
package ranker

import (
	"fmt"
	"math"
	"sort"
)

const (
	MaxResultDocumentCount = 5
	// RelevanceEpsilon is the tolerance below which two relevances are equal.
	RelevanceEpsilon = 1e-6
)

type Document struct {
	ID        int     `json:"id"`
	Relevance float64 `json:"relevance"`
	Rating    int     `json:"rating"`
}

func (d Document) String() string {
	return fmt.Sprintf("{ document_id = %d, relevance = %g, rating = %d }", d.ID, d.Relevance, d.Rating)
}

// InverseDocumentFrequency returns ln(total/containing). containing must be
// positive.
func InverseDocumentFrequency(total, containing int) float64 {
	return math.Log(float64(total) / float64(containing))
}

// Less orders by relevance descending; relevances within RelevanceEpsilon
// fall back to rating descending, then id ascending.
func Less(a, b Document) bool {
	if math.Abs(a.Relevance-b.Relevance) < RelevanceEpsilon {
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	}
	return a.Relevance > b.Relevance
}

func Sort(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return Less(docs[i], docs[j])
	})
}

// Top sorts docs and truncates them to limit. limit <= 0 keeps everything.
func Top(docs []Document, limit int) []Document {
	Sort(docs)
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}
