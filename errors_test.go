package gitscribe

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrEmptyInput(t *testing.T) {
	t.Run("is a sentinel error", func(t *testing.T) {
		assert.Equal(t, "empty input", ErrEmptyInput.Error())
		assert.True(t, errors.Is(fmt.Errorf("chat: %w", ErrEmptyInput), ErrEmptyInput))
	})
}

func TestError(t *testing.T) {
	t.Run("Error includes cause", func(t *testing.T) {
		err := NewStatusError("bad key", 401, 0, errors.New("unauthorized"))
		assert.Equal(t, "bad key: unauthorized", err.Error())
	})

	t.Run("Error does not repeat identical cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewStatusError("boom", 500, 0, cause)
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("io")
		err := NewUserInputError("rejected", 400, cause)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("transient with retry carries delay", func(t *testing.T) {
		err := NewStatusError("slow down", 429, 3*time.Second, nil)
		assert.True(t, err.Retryable())
		assert.Equal(t, 3*time.Second, err.RetryAfter())
		assert.Equal(t, 429, err.StatusCode())
	})
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorCategory
	}{
		{429, ErrorTransient},
		{500, ErrorTransient},
		{503, ErrorTransient},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{400, ErrorUserInput},
		{413, ErrorUserInput},
		{422, ErrorUserInput},
		{418, ErrorPermanent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeStatus(tt.code))
		})
	}
}

func TestNewStatusError(t *testing.T) {
	t.Run("retry-after forces transient", func(t *testing.T) {
		err := NewStatusError("limited", 403, time.Second, nil)
		assert.True(t, IsTransient(err))
		assert.Equal(t, 403, err.StatusCode())
		assert.Equal(t, time.Second, err.RetryAfter())
	})

	t.Run("category follows status code", func(t *testing.T) {
		assert.True(t, IsPermanent(NewStatusError("denied", 401, 0, nil)))
		assert.True(t, IsUserInput(NewStatusError("too big", 413, 0, nil)))
	})
}

func TestPredicatesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("chat: %w", NewStatusError("limited", 429, 2*time.Second, nil))

	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsPermanent(wrapped))
	assert.False(t, IsUserInput(wrapped))
	assert.Equal(t, 429, StatusCodeOf(wrapped))
	assert.Equal(t, 2*time.Second, RetryAfterOf(wrapped))

	plain := errors.New("plain")
	assert.False(t, IsTransient(plain))
	assert.Zero(t, StatusCodeOf(plain))
	assert.Zero(t, RetryAfterOf(plain))
}
