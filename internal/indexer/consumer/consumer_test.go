package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
)

func newEngine(t *testing.T) *indexer.Engine {
	t.Helper()
	e, err := indexer.NewEngine(config.IndexConfig{StopWords: []string{"the"}})
	require.NoError(t, err)
	return e
}

func encode(t *testing.T, e DocumentEvent) []byte {
	t.Helper()
	data, err := json.Marshal(e)
	require.NoError(t, err)
	return data
}

func TestHandleMessageAddAndRemove(t *testing.T) {
	engine := newEngine(t)
	handle := HandleMessage(engine)
	ctx := context.Background()
	before := engine.Fingerprint()

	add := NewAddEvent(loader.Record{ID: 7, Text: "the cat sat", Status: index.StatusBanned, Ratings: []int{4, 5}})
	require.NoError(t, handle(ctx, []byte(add.Key()), encode(t, add)))

	doc, ok := engine.Document(7)
	require.True(t, ok)
	assert.Equal(t, index.StatusBanned, doc.Status)
	assert.Equal(t, 4, doc.Rating)
	assert.Equal(t, map[string]float64{"cat": 0.5, "sat": 0.5}, engine.GetWordFrequencies(7))

	remove := NewRemoveEvent(7)
	require.NoError(t, handle(ctx, []byte(remove.Key()), encode(t, remove)))
	assert.Equal(t, 0, engine.GetDocumentCount())
	assert.Equal(t, uint64(2), engine.Generation())
	assert.NotEqual(t, before, engine.Fingerprint())
}

func TestHandleMessageSkipsBadEvents(t *testing.T) {
	engine := newEngine(t)
	handle := HandleMessage(engine)
	ctx := context.Background()
	before := engine.Fingerprint()

	assert.NoError(t, handle(ctx, []byte("k"), []byte("{not json")))
	assert.NoError(t, handle(ctx, []byte("k"), []byte(`{"op":"add","id":1,"status":"DELETED"}`)))
	assert.NoError(t, handle(ctx, []byte("k"), []byte(`{"op":"upsert","id":1,"text":"cat"}`)))
	assert.NoError(t, handle(ctx, []byte("-1"), encode(t, NewAddEvent(loader.Record{ID: -1, Text: "cat"}))))

	assert.Equal(t, 0, engine.GetDocumentCount())
	assert.Equal(t, before, engine.Fingerprint())
}

func TestHandleMessageDuplicateAddKeepsFirst(t *testing.T) {
	engine := newEngine(t)
	handle := HandleMessage(engine)
	ctx := context.Background()

	require.NoError(t, handle(ctx, nil, encode(t, NewAddEvent(loader.Record{ID: 1, Text: "cat"}))))
	require.NoError(t, handle(ctx, nil, encode(t, NewAddEvent(loader.Record{ID: 1, Text: "dog"}))))

	assert.Equal(t, map[string]float64{"cat": 1.0}, engine.GetWordFrequencies(1))
}

func TestEventEncoding(t *testing.T) {
	e := NewAddEvent(loader.Record{ID: 12, Text: "cat", Status: index.StatusIrrelevant, Ratings: []int{1}})
	assert.Equal(t, "12", e.Key())
	assert.NotEmpty(t, e.EventID)
	assert.NotEqual(t, e.EventID, NewRemoveEvent(12).EventID)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(encode(t, e), &raw))
	assert.Equal(t, "add", raw["op"])
	assert.Equal(t, "IRRELEVANT", raw["status"])
}
