package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(42).String())
}

func TestWrapFormatsContext(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Decorator", "Setup", "section enumeration")

	require.Error(t, err)
	assert.Equal(t, "Decorator.Setup: section enumeration failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "c", "m", "a"))
	assert.NoError(t, WrapTransient(nil, "c", "m", "a"))
	assert.NoError(t, WrapInvalid(nil, "c", "m", "a"))
	assert.NoError(t, WrapFatal(nil, "c", "m", "a"))
}

func TestClassifiedWrapping(t *testing.T) {
	tests := []struct {
		name      string
		wrap      func(error, string, string, string) error
		wantClass ErrorClass
	}{
		{"transient", WrapTransient, ErrorTransient},
		{"invalid", WrapInvalid, ErrorInvalid},
		{"fatal", WrapFatal, ErrorFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := stderrors.New("inner")
			err := tt.wrap(base, "KVSource", "ChildNames", "list keys")

			var ce *ClassifiedError
			require.True(t, stderrors.As(err, &ce))
			assert.Equal(t, tt.wantClass, ce.Class)
			assert.Equal(t, "KVSource", ce.Component)
			assert.Equal(t, "ChildNames", ce.Operation)
			assert.True(t, stderrors.Is(err, base))
		})
	}
}

func TestIsTransient(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.True(t, IsTransient(ErrConnectionTimeout))
	assert.True(t, IsTransient(ErrFeedUnavailable))
	assert.True(t, IsTransient(context.DeadlineExceeded))
	assert.True(t, IsTransient(stderrors.New("network glitch")))
	assert.False(t, IsTransient(stderrors.New("bad value")))
	assert.True(t, IsTransient(WrapTransient(stderrors.New("x"), "c", "m", "a")))
	assert.False(t, IsTransient(WrapFatal(stderrors.New("x"), "c", "m", "a")))
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.True(t, IsFatal(ErrStorageUnavailable))
	assert.True(t, IsFatal(fmt.Errorf("enumerate: %w", ErrStorageUnavailable)))
	assert.True(t, IsFatal(WrapFatal(stderrors.New("x"), "c", "m", "a")))
	assert.False(t, IsFatal(stderrors.New("plain")))
}

func TestIsInvalid(t *testing.T) {
	assert.False(t, IsInvalid(nil))
	assert.True(t, IsInvalid(ErrInvalidConfig))
	assert.True(t, IsInvalid(ErrParsingFailed))
	assert.True(t, IsInvalid(WrapInvalid(stderrors.New("x"), "c", "m", "a")))
	assert.False(t, IsInvalid(ErrStorageUnavailable))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ErrorFatal, Classify(ErrStorageUnavailable))
	assert.Equal(t, ErrorInvalid, Classify(ErrInvalidConfig))
	assert.Equal(t, ErrorTransient, Classify(ErrConnectionLost))
	// Unknown errors default to transient
	assert.Equal(t, ErrorTransient, Classify(stderrors.New("mystery")))
}
