package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  []kafka.Message
	committed []int64
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.messages) == 0 {
		f.cancel()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error { return nil }

func TestConsumerCommitsOnlyHandledMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{
		messages: []kafka.Message{
			{Offset: 1, Key: []byte("a"), Value: []byte(`ok`)},
			{Offset: 2, Key: []byte("b"), Value: []byte(`bad`)},
			{Offset: 3, Key: []byte("c"), Value: []byte(`ok`)},
		},
		cancel: cancel,
	}
	var seen []string
	c := newConsumer(reader, "documents", func(_ context.Context, key, value []byte) error {
		seen = append(seen, string(key))
		if string(value) == "bad" {
			return errors.New("rejected")
		}
		return nil
	})

	require.NoError(t, c.Run(ctx))
	assert.Equal(t, []string{"a", "b", "c"}, seen)
	assert.Equal(t, []int64{1, 3}, reader.committed)
}

type fakeWriter struct {
	written []kafka.Message
	err     error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestProducerPublishEncodesJSON(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, "documents")

	err := p.Publish(context.Background(),
		Event{Key: "1", Value: map[string]int{"id": 1}},
		Event{Key: "2", Value: map[string]int{"id": 2}},
	)
	require.NoError(t, err)
	require.Len(t, w.written, 2)
	assert.Equal(t, "2", string(w.written[1].Key))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(w.written[0].Value, &decoded))
	assert.Equal(t, 1, decoded["id"])

	require.NoError(t, p.Publish(context.Background()))
	assert.Len(t, w.written, 2)
}

func TestProducerPublishError(t *testing.T) {
	boom := errors.New("broker down")
	p := newProducer(&fakeWriter{err: boom}, "documents")
	err := p.Publish(context.Background(), Event{Key: "1", Value: 1})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		ID int `json:"id"`
	}
	got, err := DecodeJSON[payload]([]byte(`{"id":7}`))
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)

	_, err = DecodeJSON[payload]([]byte(`{`))
	assert.Error(t, err)
}
