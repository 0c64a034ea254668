// Package indexer owns the document lifecycle: it tokenizes and validates
// incoming text, maintains the in-memory index, and publishes a generation
// counter and a content fingerprint that readers use to detect changes.
package indexer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"log/slog"
	"strings"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

type Engine struct {
	index     *index.MemoryIndex
	stopWords tokenizer.StopWords
	metrics   *metrics.Metrics
	logger    *slog.Logger

	// mu serializes mutations so the index change and the version bump are
	// observed together by Generation and Fingerprint.
	mu          sync.RWMutex
	generation  uint64
	fingerprint [sha256.Size]byte
}

type Option func(*Engine)

// WithMetrics records document counters and the live document gauge on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine builds an empty engine. It fails if a configured stop word
// contains control characters.
func NewEngine(cfg config.IndexConfig, opts ...Option) (*Engine, error) {
	stopWords, err := tokenizer.NewStopWords(cfg.StopWords)
	if err != nil {
		return nil, fmt.Errorf("building stop words: %w", err)
	}
	e := &Engine{
		index:     index.NewMemoryIndex(),
		stopWords: stopWords,
		logger:    logger.WithComponent("indexer"),
	}
	e.fingerprint = sha256.Sum256([]byte("stop-words|" + strings.Join(stopWords.Words(), " ")))
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// AddDocument indexes text under id. The id and every word are validated
// before anything is stored, so a failed call leaves the engine unchanged.
// The stored rating is the mean of ratings truncated toward zero.
func (e *Engine) AddDocument(id int, text string, status index.Status, ratings []int) error {
	err := e.addDocument(id, text, status, ratings)
	if err != nil {
		if e.metrics != nil {
			e.metrics.DocsRejectedTotal.Inc()
		}
		return err
	}
	if e.metrics != nil {
		e.metrics.DocsIndexedTotal.Inc()
	}
	return nil
}

func (e *Engine) addDocument(id int, text string, status index.Status, ratings []int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d is negative", id)
	}
	words, err := e.stopWords.SplitIntoWordsNoStop(text)
	if err != nil {
		return fmt.Errorf("document %d: %w", id, err)
	}
	rating := AverageRating(ratings)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.index.Add(id, words, status, rating); err != nil {
		return err
	}
	e.advance(func(h hash.Hash) {
		fmt.Fprintf(h, "add|%d|%d|%d|%s", id, int(status), rating, strings.Join(words, " "))
	})
	e.logger.Debug("document indexed",
		"doc_id", id,
		"status", status.String(),
		"rating", rating,
		"word_count", len(words),
	)
	return nil
}

// RemoveDocument deletes id if present. Removing an unknown id is a no-op.
func (e *Engine) RemoveDocument(id int) {
	e.mu.Lock()
	removed := e.index.Remove(id)
	if removed {
		e.advance(func(h hash.Hash) {
			fmt.Fprintf(h, "remove|%d", id)
		})
	}
	e.mu.Unlock()
	if !removed {
		return
	}
	e.logger.Debug("document removed", "doc_id", id)
	if e.metrics != nil {
		e.metrics.DocsRemovedTotal.Inc()
	}
}

// GetWordFrequencies returns a copy of the term -> tf map for id, empty if
// the id is unknown.
func (e *Engine) GetWordFrequencies(id int) map[string]float64 {
	return e.index.WordFrequencies(id)
}

func (e *Engine) GetDocumentCount() int {
	return e.index.DocCount()
}

// DocumentIDs returns the live ids in ascending order.
func (e *Engine) DocumentIDs() []int {
	return e.index.DocumentIDs()
}

func (e *Engine) Document(id int) (index.Document, bool) {
	return e.index.Document(id)
}

func (e *Engine) StopWords() tokenizer.StopWords {
	return e.stopWords
}

// View runs fn against a consistent snapshot of the index.
func (e *Engine) View(fn func(*index.ReadView)) {
	e.index.View(fn)
}

// Generation increases on every successful add or remove.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// Fingerprint identifies the index contents by chaining a hash over the stop
// words and every applied mutation in order. Engines that applied the same
// mutations in the same order report the same fingerprint, across processes.
func (e *Engine) Fingerprint() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return hex.EncodeToString(e.fingerprint[:])
}

// advance folds one mutation into the fingerprint. e.mu must be held.
func (e *Engine) advance(write func(h hash.Hash)) {
	h := sha256.New()
	h.Write(e.fingerprint[:])
	write(h)
	copy(e.fingerprint[:], h.Sum(nil))
	e.generation++
	if e.metrics != nil {
		e.metrics.DocumentCount.Set(float64(e.index.DocCount()))
	}
}

// AverageRating returns the integer mean of ratings, truncated toward zero,
// or 0 for no ratings.
func AverageRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	var sum int64
	for _, r := range ratings {
		sum += int64(r)
	}
	return int(sum / int64(len(ratings)))
}
