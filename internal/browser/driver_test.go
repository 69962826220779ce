package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDriverRejectsUnresolvableConfig(t *testing.T) {
	_, err := NewDriver(Config{})
	require.Error(t, err)
}

func TestDriverSpawnPropagatesLaunchFailure(t *testing.T) {
	driver, err := NewDriver(Config{
		Binary:            "/bin/true",
		Extension:         ExtensionSourceDir{Path: newTestExtensionDir(t)},
		HandshakeTimeout:  50 * time.Millisecond,
		CommandTimeout:    50 * time.Millisecond,
		EventReplyTimeout: 50 * time.Millisecond,
		ShutdownGrace:     50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer driver.Close(context.Background())

	// /bin/true exits immediately without ever dialing the pool, so the
	// handshake wait times out; this exercises the same failure path a
	// genuinely broken Firefox binary would hit.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = driver.Spawn(ctx)
	require.Error(t, err)
	require.Equal(t, 0, driver.WindowCount())
}
