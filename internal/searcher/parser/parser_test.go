package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/indexer/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/search-server/pkg/errors"
)

func stopWords(t *testing.T) tokenizer.StopWords {
	t.Helper()
	sw, err := tokenizer.ParseStopWords("and in on the")
	require.NoError(t, err)
	return sw
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantPlus  []string
		wantMinus []string
	}{
		{"empty", "", []string{}, []string{}},
		{"plus only", "fluffy cat", []string{"cat", "fluffy"}, []string{}},
		{"duplicates collapse", "cat cat dog cat", []string{"cat", "dog"}, []string{}},
		{"minus words", "cat -dog -dog", []string{"cat"}, []string{"dog"}},
		{"stop words dropped", "the cat in -the city", []string{"cat", "city"}, []string{}},
		{"plus and minus overlap", "cat -cat", []string{"cat"}, []string{"cat"}},
		{"inner dash kept", "well-groomed dog", []string{"dog", "well-groomed"}, []string{}},
		{"extra spaces", "  cat   dog ", []string{"cat", "dog"}, []string{}},
	}
	sw := stopWords(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.raw, sw)
			require.NoError(t, err)
			assert.Equal(t, tt.raw, q.Raw)
			assert.Equal(t, tt.wantPlus, q.Plus)
			assert.Equal(t, tt.wantMinus, q.Minus)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare dash", "cat -"},
		{"double dash", "cat --dog"},
		{"control character", "ca\x01t"},
		{"control character in minus", "cat -d\x1fog"},
	}
	sw := stopWords(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, sw)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestNormalized(t *testing.T) {
	sw := stopWords(t)
	a, err := Parse("dog the cat -bird", sw)
	require.NoError(t, err)
	b, err := Parse("-bird cat  dog dog", sw)
	require.NoError(t, err)

	assert.Equal(t, "cat dog -bird", a.Normalized())
	assert.Equal(t, a.Normalized(), b.Normalized())
	assert.False(t, a.IsEmpty())

	empty, err := Parse("-cat", sw)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}
