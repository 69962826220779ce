package browser

import (
	"context"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeSpawnResult(t *testing.T) *spawnResult {
	t.Helper()
	conn, _ := connectionTestPair(t, testConnConfig())
	return &spawnResult{
		sessionID: SessionId(1),
		tabID:     TabId(1),
		conn:      conn,
		cmd:       &exec.Cmd{},
		profile:   &profile{Dir: t.TempDir(), ephemeral: true},
	}
}

func TestWindowCloneKeepsUnderlyingAliveUntilAllClosed(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	res := fakeSpawnResult(t)
	profileDir := res.profile.Dir
	win := newWindow(res, pool, testPoolConfig(t))
	clone := win.Clone()

	require.NoError(t, win.Close())
	select {
	case <-win.inner.conn.closed:
		t.Fatal("underlying connection closed before all clones were closed")
	default:
	}
	_, err = os.Stat(profileDir)
	require.NoError(t, err, "profile must survive until the last clone closes")

	require.NoError(t, clone.Close())
	select {
	case <-win.inner.conn.closed:
	default:
		t.Fatal("underlying connection should be closed once the last clone closes")
	}
}

func TestWindowAccessors(t *testing.T) {
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	win := newWindow(fakeSpawnResult(t), pool, testPoolConfig(t))
	require.Equal(t, SessionId(1), win.SessionID())
	require.Equal(t, TabId(1), win.InitialTabID())
	require.Equal(t, pool.Port(), win.Port())
}
