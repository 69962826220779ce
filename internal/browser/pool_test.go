package browser

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func testPoolConfig(t *testing.T) ResolvedConfig {
	t.Helper()
	return ResolvedConfig{
		Binary:            "/bin/true",
		Extension:         ExtensionSourceDir{Path: newTestExtensionDir(t)},
		HandshakeTimeout:  200 * time.Millisecond,
		CommandTimeout:    200 * time.Millisecond,
		EventReplyTimeout: 200 * time.Millisecond,
		ShutdownGrace:     100 * time.Millisecond,
	}
}

func dialPool(t *testing.T, pool *ConnectionPool) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(pool.URL(), nil)
	require.NoError(t, err)
	return conn
}

func TestPoolRoutesSessionAfterReadyHandshake(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	waiter := pool.RegisterWaiter(SessionId(5))

	client := dialPool(t, pool)
	defer client.Close()

	ready, err := encodeReady(SessionId(5), TabId(1))
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage, ready))

	select {
	case conn := <-waiter:
		require.Equal(t, SessionId(5), conn.SessionID())
		require.Equal(t, TabId(1), conn.InitialTabID())
	case <-time.After(2 * time.Second):
		t.Fatal("waiter never resolved")
	}

	require.Eventually(t, func() bool { return pool.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestPoolWaitForSessionTimesOutWithoutHandshake(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = pool.WaitForSession(ctx, SessionId(99))
	require.Error(t, err)
}

func TestPoolRejectsNonReadyFirstFrame(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	client := dialPool(t, pool)
	defer client.Close()

	require.NoError(t, client.WriteMessage(websocket.TextMessage, []byte(`{"id":null,"type":"event","method":"x","params":{}}`)))

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = client.ReadMessage()
	require.Error(t, err, "server should have closed the socket for an invalid handshake")
}

func TestPoolHealthzReportsSessionCount(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	resp, err := http.Get("http://" + pool.listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 0, body["sessions"])
}
