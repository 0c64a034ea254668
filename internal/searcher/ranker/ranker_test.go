package ranker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentString(t *testing.T) {
	d := Document{ID: 1, Relevance: 0.5, Rating: 2}
	assert.Equal(t, "{ document_id = 1, relevance = 0.5, rating = 2 }", d.String())
}

func TestInverseDocumentFrequency(t *testing.T) {
	assert.InDelta(t, math.Log(2), InverseDocumentFrequency(4, 2), 1e-12)
	assert.Equal(t, 0.0, InverseDocumentFrequency(3, 3))
}

func TestTopOrdering(t *testing.T) {
	docs := []Document{
		{ID: 4, Relevance: 0.1, Rating: 9},
		{ID: 2, Relevance: 0.5, Rating: 1},
		{ID: 3, Relevance: 0.5 + RelevanceEpsilon/10, Rating: 7},
		{ID: 1, Relevance: 0.5, Rating: 7},
		{ID: 5, Relevance: 0.9, Rating: -1},
		{ID: 6, Relevance: 0.05, Rating: 0},
	}

	got := Top(docs, MaxResultDocumentCount)

	ids := make([]int, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	assert.Equal(t, []int{5, 1, 3, 2, 4}, ids)
}

func TestTopNoLimit(t *testing.T) {
	docs := []Document{{ID: 2, Relevance: 1}, {ID: 1, Relevance: 2}}
	got := Top(docs, 0)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
}

func TestLessIsStrict(t *testing.T) {
	a := Document{ID: 1, Relevance: 0.3, Rating: 2}
	assert.False(t, Less(a, a))
}
