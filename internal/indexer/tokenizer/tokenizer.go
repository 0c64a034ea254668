// Package tokenizer splits raw document and query text into words, validates
// them, and provides the immutable stop-word set applied before indexing.
package tokenizer

import (
	"slices"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// SplitIntoWords breaks text on the space character and returns the
// non-empty words in input order. Other whitespace such as tabs stays inside
// the word so IsValidWord can reject it.
func SplitIntoWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' '
	})
}

// IsValidWord reports whether word is free of control characters (bytes
// below 0x20).
func IsValidWord(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < ' ' {
			return false
		}
	}
	return true
}

// StopWords is an immutable set of words excluded from indexing and queries.
// The zero value is an empty set.
type StopWords struct {
	words map[string]struct{}
}

// NewStopWords builds a stop-word set, dropping empty strings. It fails if
// any word contains control characters.
func NewStopWords(words []string) (StopWords, error) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if !IsValidWord(w) {
			return StopWords{}, apperrors.Newf(apperrors.ErrInvalidArgument, "stop word %q contains control characters", w)
		}
		set[w] = struct{}{}
	}
	return StopWords{words: set}, nil
}

// ParseStopWords splits text into words and builds a stop-word set from them.
func ParseStopWords(text string) (StopWords, error) {
	return NewStopWords(SplitIntoWords(text))
}

func (s StopWords) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s StopWords) Len() int {
	return len(s.words)
}

// Words returns the stop words in ascending order.
func (s StopWords) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// SplitIntoWordsNoStop splits text, validates every word, and drops stop
// words. Validation covers all words before anything is returned so callers
// never act on a partially valid document.
func (s StopWords) SplitIntoWordsNoStop(text string) ([]string, error) {
	words := SplitIntoWords(text)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !IsValidWord(w) {
			return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "word %q contains control characters", w)
		}
		if s.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}
	return kept, nil
}
