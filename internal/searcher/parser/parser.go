// Package parser turns a raw query string into sorted, de-duplicated plus
// and minus term sets.
package parser

import (
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

// Query is a parsed query. A term may appear in both Plus and Minus; the
// minus side wins when ranking.
type Query struct {
	Raw   string
	Plus  []string
	Minus []string
}

// Parse classifies each space-separated word of raw. A single leading '-'
// marks a minus word. Stop words are dropped after classification.
func Parse(raw string, stopWords tokenizer.StopWords) (*Query, error) {
	q := &Query{
		Raw:   raw,
		Plus:  make([]string, 0),
		Minus: make([]string, 0),
	}
	for _, word := range tokenizer.SplitIntoWords(raw) {
		term, minus, err := parseWord(word)
		if err != nil {
			return nil, err
		}
		if stopWords.Contains(term) {
			continue
		}
		if minus {
			q.Minus = append(q.Minus, term)
		} else {
			q.Plus = append(q.Plus, term)
		}
	}
	slices.Sort(q.Plus)
	q.Plus = slices.Compact(q.Plus)
	slices.Sort(q.Minus)
	q.Minus = slices.Compact(q.Minus)
	return q, nil
}

func parseWord(word string) (term string, minus bool, err error) {
	term, minus = strings.CutPrefix(word, "-")
	if term == "" {
		return "", false, apperrors.New(apperrors.ErrInvalidArgument, "query word is a bare '-'")
	}
	if term[0] == '-' {
		return "", false, apperrors.Newf(apperrors.ErrInvalidArgument, "query word %q has more than one leading '-'", word)
	}
	if !tokenizer.IsValidWord(term) {
		return "", false, apperrors.Newf(apperrors.ErrInvalidArgument, "query word %q contains control characters", word)
	}
	return term, minus, nil
}

// Normalized renders the query in a canonical form: equal queries yield
// equal strings regardless of word order, duplicates or stop words.
func (q *Query) Normalized() string {
	var b strings.Builder
	b.WriteString(strings.Join(q.Plus, " "))
	for _, m := range q.Minus {
		b.WriteString(" -")
		b.WriteString(m)
	}
	return b.String()
}

// IsEmpty reports whether the query has no plus terms and so cannot match.
func (q *Query) IsEmpty() bool {
	return len(q.Plus) == 0
}
