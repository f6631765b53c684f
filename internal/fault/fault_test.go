package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(New(Validation, "bad input")))
	assert.Equal(t, UpstreamTimeout, KindOf(Wrap(UpstreamTimeout, "too slow", errors.New("deadline"))))

	// Errors from outside the taxonomy collapse to Internal, including ones
	// that wrap a fault deeper down the chain.
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	wrapped := fmt.Errorf("outer: %w", New(Unparsable, "no json"))
	assert.Equal(t, Unparsable, KindOf(wrapped))
}

func TestIsKind(t *testing.T) {
	err := New(Configuration, "key missing")
	assert.True(t, IsKind(err, Configuration))
	assert.False(t, IsKind(err, Validation))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", Message(New(Validation, "bad input")))
	assert.Equal(t, "internal error", Message(errors.New("secret details must not leak")))

	// The wrapped cause appears in Error() for logs but not in Message().
	err := Wrap(Unparsable, "could not parse", errors.New("unexpected token"))
	assert.Equal(t, "could not parse: unexpected token", err.Error())
	assert.Equal(t, "could not parse", Message(err))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(Internal, "wrapped", cause)
	assert.True(t, errors.Is(err, cause))
}
