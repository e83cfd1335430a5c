package errors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := UnknownUser(42)
	assert.Equal(t, "[UNKNOWN_USER] user 42 not found in presence data", err.Error())

	wrapped := SourceUnavailable("cannot open presence csv", errors.New("no such file"))
	assert.Contains(t, wrapped.Error(), "SOURCE_UNAVAILABLE")
	assert.Contains(t, wrapped.Error(), "no such file")
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(UnknownUser(7), ErrCodeUnknownUser))
	assert.False(t, IsCode(UnknownUser(7), ErrCodeRosterMismatch))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeUnknownUser))
}

func TestGetCodeFromError(t *testing.T) {
	assert.Equal(t, ErrCodeRosterMismatch, GetCodeFromError(RosterMismatch(1), ErrCodeInvalidArgument))
	assert.Equal(t, ErrCodeInvalidArgument, GetCodeFromError(errors.New("plain"), ErrCodeInvalidArgument))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeSourceUnavailable, "reading roster")
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}
