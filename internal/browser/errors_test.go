package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapRemoteErrorKnownCode(t *testing.T) {
	err := mapRemoteError("stale element", "element detached")
	require.Equal(t, ErrStaleElement, err.Kind)
	require.True(t, err.IsElementError())
	require.True(t, err.IsRecoverable())
}

func TestMapRemoteErrorUnknownCodeFallsBackToProtocol(t *testing.T) {
	err := mapRemoteError("something weird", "unmapped")
	require.Equal(t, ErrProtocol, err.Kind)
}

func TestDriverErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := WrapError(ErrIO, inner)
	require.ErrorIs(t, wrapped, inner)
}

func TestDriverErrorWithField(t *testing.T) {
	err := NewError(ErrRequestTimeout, "timed out").withField("request_id", "abc")
	require.Contains(t, err.Error(), "abc")
	require.True(t, err.IsTimeout())
}

func TestIsConnectionErrorClassification(t *testing.T) {
	require.True(t, NewError(ErrConnectionClosed, "").IsConnectionError())
	require.False(t, NewError(ErrScriptError, "").IsConnectionError())
}
