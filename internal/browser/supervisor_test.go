package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirefoxArgsIncludesHeadlessAndSize(t *testing.T) {
	cfg := ResolvedConfig{Headless: true, WindowWidth: 1024, WindowHeight: 768}
	args := firefoxArgs("/tmp/profile", cfg, "data:text/html,hi")

	require.Equal(t, []string{
		"-profile", "/tmp/profile", "-no-remote", "-new-instance",
		"-headless", "-width", "1024", "-height", "768",
		"data:text/html,hi",
	}, args)
}

func TestFirefoxArgsOmitsHeadlessAndSizeWhenUnset(t *testing.T) {
	cfg := ResolvedConfig{}
	args := firefoxArgs("/tmp/profile", cfg, "data:text/html,hi")

	require.Equal(t, []string{
		"-profile", "/tmp/profile", "-no-remote", "-new-instance",
		"data:text/html,hi",
	}, args)
}

func TestSpawnFirefoxFailsFastWhenProfileMaterializationFails(t *testing.T) {
	cfg := ResolvedConfig{
		Extension:        ExtensionSourceDir{Path: "/path/does/not/exist"},
		HandshakeTimeout: testPoolConfig(t).HandshakeTimeout,
	}
	pool, err := NewConnectionPool(testPoolConfig(t))
	require.NoError(t, err)
	defer pool.Shutdown(context.Background())

	_, err = spawnFirefox(context.Background(), pool, cfg, SessionId(1))
	require.Error(t, err)
}
