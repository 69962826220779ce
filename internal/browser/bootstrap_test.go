package browser

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildBootstrapURIEmbedsSessionAndWSURL(t *testing.T) {
	uri, err := buildBootstrapURI("ws://127.0.0.1:54321/ws", SessionId(7))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:text/html,"))

	decoded, err := url.QueryUnescape(strings.TrimPrefix(uri, "data:text/html,"))
	require.NoError(t, err)
	require.Contains(t, decoded, "WEBDRIVER_INIT")
	require.Contains(t, decoded, "ws://127.0.0.1:54321/ws")
	require.Contains(t, decoded, `"sessionId":7`)
	require.Contains(t, decoded, "window.postMessage")
}
