package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestExtensionDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := `{"manifest_version":2,"name":"foxdrift-controller","version":"1.0","browser_specific_settings":{"gecko":{"id":"controller@foxdrift"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(manifest), 0o644))
	return dir
}

func testResolvedConfig(t *testing.T, proxy *ProxyConfig) ResolvedConfig {
	t.Helper()
	return ResolvedConfig{
		Binary:            "/usr/bin/firefox",
		Extension:         ExtensionSourceDir{Path: newTestExtensionDir(t)},
		Proxy:             proxy,
		HandshakeTimeout:  DefaultHandshakeTimeout,
		CommandTimeout:    DefaultCommandTimeout,
		EventReplyTimeout: DefaultEventReplyTimeout,
		ShutdownGrace:     DefaultShutdownGrace,
	}
}

func TestMaterializeProfileWritesUserJSAndExtension(t *testing.T) {
	cfg := testResolvedConfig(t, nil)

	prof, err := materializeProfile(cfg)
	require.NoError(t, err)
	defer prof.cleanup()
	require.True(t, prof.ephemeral)

	userJS, err := os.ReadFile(filepath.Join(prof.Dir, "user.js"))
	require.NoError(t, err)
	require.Contains(t, string(userJS), userJSHeader)
	require.Contains(t, string(userJS), `user_pref("xpinstall.signatures.required", false);`)

	installedManifest := filepath.Join(prof.Dir, "extensions", "controller@foxdrift", "manifest.json")
	_, err = os.Stat(installedManifest)
	require.NoError(t, err)
}

func TestMaterializeProfileWritesProxyPrefs(t *testing.T) {
	cfg := testResolvedConfig(t, &ProxyConfig{URL: "socks5://proxy.internal:1080"})

	prof, err := materializeProfile(cfg)
	require.NoError(t, err)
	defer prof.cleanup()

	userJS, err := os.ReadFile(filepath.Join(prof.Dir, "user.js"))
	require.NoError(t, err)
	require.Contains(t, string(userJS), `user_pref("network.proxy.socks", "proxy.internal");`)
	require.Contains(t, string(userJS), `user_pref("network.proxy.socks_version", 5);`)
}

func TestProfileCleanupRemovesEphemeralDirOnly(t *testing.T) {
	cfg := testResolvedConfig(t, nil)
	cfg.ProfilePath = t.TempDir()

	prof, err := materializeProfile(cfg)
	require.NoError(t, err)
	require.False(t, prof.ephemeral)

	prof.cleanup()
	_, err = os.Stat(prof.Dir)
	require.NoError(t, err, "caller-supplied profile dir must survive cleanup")
}
