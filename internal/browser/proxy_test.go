package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProxyConfigValidateAcceptsHTTP(t *testing.T) {
	p := &ProxyConfig{URL: "http://proxy.internal:8080"}
	require.NoError(t, p.validate())
}

func TestProxyConfigValidateAcceptsSocks5(t *testing.T) {
	p := &ProxyConfig{URL: "socks5://proxy.internal:1080"}
	require.NoError(t, p.validate())
}

func TestProxyConfigValidateAcceptsSocks4(t *testing.T) {
	p := &ProxyConfig{URL: "socks4://proxy.internal:1080"}
	require.NoError(t, p.validate())
}

func TestProxyConfigValidateRejectsUnknownScheme(t *testing.T) {
	p := &ProxyConfig{URL: "ftp://proxy.internal:21"}
	require.Error(t, p.validate())
}

func TestProxyConfigValidateRejectsMissingHost(t *testing.T) {
	p := &ProxyConfig{URL: "http://"}
	require.Error(t, p.validate())
}

func TestProxyConfigToPreferenceDefaultsPortByScheme(t *testing.T) {
	p := &ProxyConfig{URL: "https://proxy.internal"}
	host, port, scheme, err := p.toPreference()
	require.NoError(t, err)
	require.Equal(t, "proxy.internal", host)
	require.Equal(t, 443, port)
	require.Equal(t, "https", scheme)
}

func TestProxyConfigToPreferenceExplicitPort(t *testing.T) {
	p := &ProxyConfig{URL: "socks5://proxy.internal:9050"}
	host, port, scheme, err := p.toPreference()
	require.NoError(t, err)
	require.Equal(t, "proxy.internal", host)
	require.Equal(t, 9050, port)
	require.Equal(t, "socks5", scheme)
}
