package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinel(t *testing.T) {
	err := Newf(ErrInvalidArgument, "document id %d already exists", 7)

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, "invalid argument: document id 7 already exists", err.Error())

	wrapped := fmt.Errorf("adding document: %w", err)
	assert.True(t, IsInvalidArgument(wrapped))

	var appErr *AppError
	assert.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "document id 7 already exists", appErr.Message)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"invalid argument", New(ErrInvalidArgument, "bad word"), ExitInvalidArgument},
		{"out of range", fmt.Errorf("match: %w", New(ErrOutOfRange, "no such document")), ExitOutOfRange},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}
