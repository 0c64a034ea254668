// Package index holds the in-memory inverted index: interned terms, the
// term -> document -> tf posting map, and the per-document term frequencies
// needed to remove a document in time proportional to its own size.
package index

import (
	"maps"
	"slices"
	"sync"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Document is the metadata stored for an indexed document.
type Document struct {
	ID     int    `json:"id"`
	Rating int    `json:"rating"`
	Status Status `json:"status"`
}

type docEntry struct {
	meta  Document
	freqs map[TermID]float64
}

type MemoryIndex struct {
	mu       sync.RWMutex
	terms    termTable
	postings map[TermID]map[int]float64
	docs     map[int]*docEntry
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		terms:    newTermTable(),
		postings: make(map[TermID]map[int]float64),
		docs:     make(map[int]*docEntry),
	}
}

// Add indexes a document whose words are already validated and stripped of
// stop words. Each occurrence contributes 1/len(words) to its term's tf. The
// index is unchanged when Add fails.
func (m *MemoryIndex) Add(id int, words []string, status Status, rating int) error {
	if id < 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d is negative", id)
	}

	tf := make(map[string]float64, len(words))
	if len(words) > 0 {
		inv := 1.0 / float64(len(words))
		for _, w := range words {
			tf[w] += inv
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[id]; exists {
		return apperrors.Newf(apperrors.ErrInvalidArgument, "document id %d already exists", id)
	}
	entry := &docEntry{
		meta:  Document{ID: id, Rating: rating, Status: status},
		freqs: make(map[TermID]float64, len(tf)),
	}
	for word, freq := range tf {
		tid := m.terms.intern(word)
		docs, ok := m.postings[tid]
		if !ok {
			docs = make(map[int]float64)
			m.postings[tid] = docs
		}
		docs[id] = freq
		entry.freqs[tid] = freq
	}
	m.docs[id] = entry
	return nil
}

// Remove deletes a document and prunes posting entries left empty. It
// reports whether the document existed.
func (m *MemoryIndex) Remove(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.docs[id]
	if !ok {
		return false
	}
	for tid := range entry.freqs {
		docs := m.postings[tid]
		delete(docs, id)
		if len(docs) == 0 {
			delete(m.postings, tid)
		}
		m.terms.release(tid)
	}
	delete(m.docs, id)
	return true
}

// WordFrequencies returns a copy of the document's term -> tf map, or an
// empty map when the id is unknown.
func (m *MemoryIndex) WordFrequencies(id int) map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.docs[id]
	if !ok {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(entry.freqs))
	for tid, freq := range entry.freqs {
		out[m.terms.text(tid)] = freq
	}
	return out
}

func (m *MemoryIndex) Document(id int) (Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.docs[id]
	if !ok {
		return Document{}, false
	}
	return entry.meta, true
}

func (m *MemoryIndex) DocCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.docs)
}

// DocumentIDs returns the live ids in ascending order.
func (m *MemoryIndex) DocumentIDs() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.docs))
}

// TermCount returns the number of terms with a non-empty posting entry.
func (m *MemoryIndex) TermCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.postings)
}

// View runs fn with the read lock held. Everything fn observes through the
// ReadView is one consistent snapshot; fn must not call back into m.
func (m *MemoryIndex) View(fn func(*ReadView)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fn(&ReadView{m: m})
}

// ReadView is a read-only window onto a MemoryIndex, valid only inside View.
// It is safe for concurrent use by goroutines started and joined within fn.
type ReadView struct {
	m *MemoryIndex
}

// Postings returns the doc -> tf map for term. The map belongs to the index
// and must not be modified.
func (v *ReadView) Postings(term string) (map[int]float64, bool) {
	tid, ok := v.m.terms.lookup(term)
	if !ok {
		return nil, false
	}
	docs, ok := v.m.postings[tid]
	return docs, ok
}

func (v *ReadView) Contains(term string, id int) bool {
	docs, ok := v.Postings(term)
	if !ok {
		return false
	}
	_, ok = docs[id]
	return ok
}

func (v *ReadView) Document(id int) (Document, bool) {
	entry, ok := v.m.docs[id]
	if !ok {
		return Document{}, false
	}
	return entry.meta, true
}

func (v *ReadView) DocCount() int {
	return len(v.m.docs)
}

// DocumentIDs returns the live ids in ascending order.
func (v *ReadView) DocumentIDs() []int {
	return slices.Sorted(maps.Keys(v.m.docs))
}

// Terms returns the distinct terms of a document in ascending order.
func (v *ReadView) Terms(id int) []string {
	entry, ok := v.m.docs[id]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entry.freqs))
	for tid := range entry.freqs {
		out = append(out, v.m.terms.text(tid))
	}
	slices.Sort(out)
	return out
}
