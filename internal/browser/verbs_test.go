package browser

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func windowTestPair(t *testing.T) (Window, *websocket.Conn) {
	t.Helper()
	conn, client := connectionTestPair(t, testConnConfig())
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { pool.Shutdown(context.Background()) })

	win := newWindow(&spawnResult{
		sessionID: SessionId(1),
		tabID:     TabId(1),
		conn:      conn,
		cmd:       nil,
		profile:   &profile{Dir: t.TempDir(), ephemeral: true},
	}, pool, testPoolConfig(t))
	return win, client
}

func TestBrowsingContextWatchLoadReceivesTopicEvents(t *testing.T) {
	win, client := windowTestPair(t)

	received := make(chan NavigationParams, 1)
	win.BrowsingContextWatchLoad(TabId(1), func(p NavigationParams) {
		received <- p
	})

	data, err := json.Marshal(map[string]any{"id": nil, "type": "event", "method": EventLoad, "params": map[string]any{"tabId": 1, "url": "https://example.test"}})
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, data))

	select {
	case p := <-received:
		require.Equal(t, "https://example.test", p.URL)
	case <-time.After(time.Second):
		t.Fatal("watcher was never invoked")
	}
}

func TestNetworkWatchRequestBodyIsReadOnlyObservation(t *testing.T) {
	win, client := windowTestPair(t)

	received := make(chan NetworkRequestParams, 1)
	win.NetworkWatchRequestBody(TabId(1), func(p NetworkRequestParams) {
		received <- p
	})

	params, err := json.Marshal(map[string]any{"tabId": 1, "url": "https://example.test", "method": "POST"})
	require.NoError(t, err)
	data, err := json.Marshal(map[string]any{"id": nil, "type": "event", "method": EventNetworkRequestBody, "params": json.RawMessage(params)})
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, data))

	select {
	case p := <-received:
		require.Equal(t, "POST", p.Method)
	case <-time.After(time.Second):
		t.Fatal("watcher was never invoked")
	}

	// network.requestBody must never be reply-requiring: no EventReply
	// should be sent back for it.
	require.False(t, isReplyRequiring(EventNetworkRequestBody))
}

func TestElementWatchAddedDecodesSubscriptionEvent(t *testing.T) {
	conn, client := connectionTestPair(t, testConnConfig())

	go func() {
		_, data, err := client.ReadMessage()
		if err != nil {
			return
		}
		var frame struct {
			ID RequestId `json:"id"`
		}
		require.NoError(t, json.Unmarshal(data, &frame))
		reply, err := json.Marshal(map[string]any{"id": frame.ID, "type": "success", "result": map[string]any{}})
		require.NoError(t, err)
		client.WriteMessage(websocket.TextMessage, reply)
	}()

	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())
	win := newWindow(&spawnResult{
		sessionID: SessionId(1),
		tabID:     TabId(1),
		conn:      conn,
		profile:   &profile{Dir: t.TempDir(), ephemeral: true},
	}, pool, testPoolConfig(t))

	received := make(chan ElementAddedParams, 1)
	subID, err := win.ElementWatchAdded(context.Background(), TabId(1), MainFrame, "css", ".thing", func(p ElementAddedParams) {
		received <- p
	})
	require.NoError(t, err)

	params, err := json.Marshal(map[string]any{"subscriptionId": subID, "elementId": ElementId{}, "strategy": "css", "value": ".thing", "tabId": 1})
	require.NoError(t, err)
	data, err := json.Marshal(map[string]any{"id": nil, "type": "event", "method": EventElementAdded, "params": json.RawMessage(params)})
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, data))

	select {
	case p := <-received:
		require.Equal(t, "css", p.Strategy)
	case <-time.After(time.Second):
		t.Fatal("watcher was never invoked")
	}
}
