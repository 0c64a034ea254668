package merger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
)

func TestJoin(t *testing.T) {
	results := [][]ranker.Document{
		{{ID: 3, Relevance: 0.9}, {ID: 1, Relevance: 0.2}},
		{},
		{{ID: 1, Relevance: 0.5}},
	}
	got := Join(results)
	ids := make([]int, len(got))
	for i, d := range got {
		ids[i] = d.ID
	}
	assert.Equal(t, []int{3, 1, 1}, ids)
	assert.Empty(t, Join(nil))
}
