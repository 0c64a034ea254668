package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func TestAddComputesTermFrequencies(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(1, []string{"cat", "city", "cat", "dog"}, StatusActual, 3))

	freqs := m.WordFrequencies(1)
	assert.InDelta(t, 0.5, freqs["cat"], 1e-9)
	assert.InDelta(t, 0.25, freqs["city"], 1e-9)
	assert.InDelta(t, 0.25, freqs["dog"], 1e-9)

	var sum float64
	for _, f := range freqs {
		sum += f
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	doc, ok := m.Document(1)
	require.True(t, ok)
	assert.Equal(t, Document{ID: 1, Rating: 3, Status: StatusActual}, doc)
	assert.Equal(t, 3, m.TermCount())
}

func TestAddRejectsInvalidIDs(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(1, []string{"cat"}, StatusActual, 0))

	err := m.Add(-1, []string{"dog"}, StatusActual, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	err = m.Add(1, []string{"dog"}, StatusActual, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	assert.Equal(t, 1, m.DocCount())
	assert.Equal(t, 1, m.TermCount())
	m.View(func(v *ReadView) {
		assert.False(t, v.Contains("dog", 1))
	})
}

func TestAddEmptyDocument(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(5, nil, StatusBanned, -2))

	assert.Equal(t, 1, m.DocCount())
	assert.Empty(t, m.WordFrequencies(5))
	doc, ok := m.Document(5)
	require.True(t, ok)
	assert.Equal(t, StatusBanned, doc.Status)
}

func TestRemovePrunesPostings(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(1, []string{"cat", "dog"}, StatusActual, 0))
	require.NoError(t, m.Add(2, []string{"dog"}, StatusActual, 0))

	assert.True(t, m.Remove(1))
	assert.False(t, m.Remove(1))
	assert.False(t, m.Remove(42))

	assert.Equal(t, 1, m.DocCount())
	assert.Equal(t, 1, m.TermCount())
	assert.Empty(t, m.WordFrequencies(1))

	m.View(func(v *ReadView) {
		_, ok := v.Postings("cat")
		assert.False(t, ok, "empty posting entry must be pruned")
		docs, ok := v.Postings("dog")
		require.True(t, ok)
		assert.Equal(t, map[int]float64{2: 1.0}, docs)
	})
}

func TestRemoveThenReuseID(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(1, []string{"old"}, StatusActual, 0))
	require.True(t, m.Remove(1))
	require.NoError(t, m.Add(1, []string{"new"}, StatusIrrelevant, 4))

	assert.Equal(t, map[string]float64{"new": 1.0}, m.WordFrequencies(1))
	m.View(func(v *ReadView) {
		assert.False(t, v.Contains("old", 1))
		assert.True(t, v.Contains("new", 1))
	})
}

func TestTermTableRecyclesHandles(t *testing.T) {
	tt := newTermTable()
	a := tt.intern("a")
	b := tt.intern("b")
	assert.Equal(t, a, tt.intern("a"))
	assert.Equal(t, 2, tt.live())

	tt.release(a)
	_, ok := tt.lookup("a")
	assert.True(t, ok, "one reference remains")
	tt.release(a)
	_, ok = tt.lookup("a")
	assert.False(t, ok)

	c := tt.intern("c")
	assert.Equal(t, a, c, "freed slot is reused")
	assert.Equal(t, "c", tt.text(c))
	assert.Equal(t, "b", tt.text(b))
	assert.Equal(t, 2, tt.live())
}

func TestDocumentIDsAscending(t *testing.T) {
	m := NewMemoryIndex()
	for _, id := range []int{9, 3, 7, 0} {
		require.NoError(t, m.Add(id, []string{"x"}, StatusActual, 0))
	}
	assert.Equal(t, []int{0, 3, 7, 9}, m.DocumentIDs())
}

func TestViewTerms(t *testing.T) {
	m := NewMemoryIndex()
	require.NoError(t, m.Add(1, []string{"b", "a", "b"}, StatusActual, 0))
	m.View(func(v *ReadView) {
		assert.Equal(t, []string{"a", "b"}, v.Terms(1))
		assert.Nil(t, v.Terms(2))
		assert.Equal(t, 1, v.DocCount())
		assert.Equal(t, []int{1}, v.DocumentIDs())
	})
}

func TestConcurrentAddRemoveAndView(t *testing.T) {
	m := NewMemoryIndex()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := w*1000 + i
				_ = m.Add(id, []string{"shared", "w"}, StatusActual, 0)
				if i%2 == 0 {
					m.Remove(id)
				}
				m.View(func(v *ReadView) {
					docs, _ := v.Postings("shared")
					_ = len(docs)
				})
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 8*100, m.DocCount())
	m.View(func(v *ReadView) {
		docs, ok := v.Postings("shared")
		require.True(t, ok)
		assert.Len(t, docs, 8*100)
	})
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusActual, StatusIrrelevant, StatusBanned, StatusRemoved} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}

	s, err := ParseStatus("banned")
	require.NoError(t, err)
	assert.Equal(t, StatusBanned, s)

	_, err = ParseStatus("deleted")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	assert.Equal(t, "UNKNOWN", Status(17).String())
}
