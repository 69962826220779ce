package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// userJSHeader is written verbatim at the top of every generated user.js.
const userJSHeader = "// Firefox WebDriver user.js\n// Auto-generated preferences for automation\n\n"

// defaultUserPrefs are written into every materialized profile's
// user.js before Firefox ever launches. They silence the onboarding
// and update-nag surfaces that would otherwise race the extension's
// READY handshake or steal window focus mid-session, and allow the
// unsigned controller extension to load at all.
var defaultUserPrefs = []userPref{
	{"xpinstall.signatures.required", false},
	{"extensions.autoDisableScopes", 0},
	{"extensions.webextensions.restrictedDomains", ""},
	{"security.data_uri.block_toplevel_data_uri_navigations", false},
	{"browser.shell.checkDefaultBrowser", false},
	{"browser.startup.homepage_override.mstone", "ignore"},
	{"browser.sessionstore.resume_from_crash", false},
	{"browser.tabs.warnOnClose", false},
	{"browser.warnOnQuit", false},
	{"datareporting.policy.dataSubmissionEnabled", false},
	{"toolkit.telemetry.enabled", false},
	{"dom.disable_beforeunload", true},
}

type userPref struct {
	key   string
	value any
}

// profile is a materialized Firefox profile directory: a user.js and an
// extensions/ subdirectory holding the unpacked controller extension.
type profile struct {
	Dir       string
	ephemeral bool
}

// materializeProfile builds (or reuses) the profile directory cfg
// describes, writes user.js, and installs the extension into it. On
// failure, a temporary directory it created is removed again.
func materializeProfile(cfg ResolvedConfig) (_ *profile, err error) {
	p := &profile{}
	if cfg.ProfilePath != "" {
		p.Dir = cfg.ProfilePath
		p.ephemeral = false
	} else {
		dir, err := os.MkdirTemp("", "foxdrift-profile-*")
		if err != nil {
			return nil, WrapError(ErrProfile, err)
		}
		p.Dir = dir
		p.ephemeral = true
	}
	defer func() {
		if err != nil {
			p.cleanup()
		}
	}()

	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return nil, WrapError(ErrProfile, err)
	}

	if err := writeUserJS(p.Dir, cfg); err != nil {
		return nil, NewError(ErrProfile, fmt.Sprintf("writing user.js: %v", err))
	}

	extensionsDir := filepath.Join(p.Dir, "extensions")
	if err := os.MkdirAll(extensionsDir, 0o755); err != nil {
		return nil, WrapError(ErrProfile, err)
	}
	if err := cfg.Extension.install(extensionsDir); err != nil {
		return nil, NewError(ErrProfile, fmt.Sprintf("installing extension: %v", err))
	}

	return p, nil
}

func writeUserJS(dir string, cfg ResolvedConfig) error {
	var b strings.Builder
	b.WriteString(userJSHeader)
	for _, pref := range defaultUserPrefs {
		writePrefLine(&b, pref.key, pref.value)
	}
	if cfg.Proxy != nil {
		if err := writeProxyPrefs(&b, cfg.Proxy); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(dir, "user.js"), []byte(b.String()), 0o644)
}

func writePrefLine(b *strings.Builder, key string, value any) {
	switch v := value.(type) {
	case bool:
		fmt.Fprintf(b, "user_pref(%q, %t);\n", key, v)
	case int:
		fmt.Fprintf(b, "user_pref(%q, %d);\n", key, v)
	case string:
		fmt.Fprintf(b, "user_pref(%q, %q);\n", key, v)
	default:
		fmt.Fprintf(b, "user_pref(%q, %v);\n", key, v)
	}
}

func writeProxyPrefs(b *strings.Builder, p *ProxyConfig) error {
	host, port, scheme, err := p.toPreference()
	if err != nil {
		return err
	}
	writePrefLine(b, "network.proxy.type", 1)
	switch scheme {
	case "socks4", "socks5":
		writePrefLine(b, "network.proxy.socks", host)
		writePrefLine(b, "network.proxy.socks_port", port)
		writePrefLine(b, "network.proxy.socks_version", map[string]int{"socks4": 4, "socks5": 5}[scheme])
	default:
		writePrefLine(b, "network.proxy.http", host)
		writePrefLine(b, "network.proxy.http_port", port)
		writePrefLine(b, "network.proxy.ssl", host)
		writePrefLine(b, "network.proxy.ssl_port", port)
	}
	writePrefLine(b, "network.proxy.share_proxy_settings", true)
	return nil
}

// cleanup removes the profile directory if it was created for this
// session only; a caller-supplied ProfilePath is never touched.
func (p *profile) cleanup() {
	if p.ephemeral {
		os.RemoveAll(p.Dir)
	}
}
