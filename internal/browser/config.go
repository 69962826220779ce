package browser

import (
	"fmt"
	"os"
	"time"
)

// Config is the caller-facing, optional-field driver configuration. It
// mirrors the two-stage resolution the rest of the codebase uses for
// browser config: callers fill in only what they care about, Resolve
// fills in the rest.
type Config struct {
	// Binary is the path to the Firefox executable. If empty, Resolve
	// searches PATH and a handful of platform-default install locations.
	Binary string

	// Extension is the source the supervisor installs into every
	// profile it materializes.
	Extension ExtensionSource

	// Headless runs Firefox with -headless.
	Headless bool

	// WindowWidth / WindowHeight, if non-zero, become -width/-height.
	WindowWidth  int
	WindowHeight int

	// ProfilePath, if set, is reused across spawns instead of a fresh
	// temporary profile directory. The supervisor never deletes a
	// caller-supplied profile.
	ProfilePath string

	// Proxy, if set, is written into the profile's preferences before
	// Firefox ever launches (a window-level default only; per-tab
	// proxy is set at runtime through proxy.setTabProxy).
	Proxy *ProxyConfig

	// Port is the pool's fixed listen port. 0 means "any free port".
	Port int

	// Timeouts, all optional; zero means "use the package default".
	HandshakeTimeout  time.Duration
	CommandTimeout    time.Duration
	EventReplyTimeout time.Duration
	ShutdownGrace     time.Duration
}

// ResolvedConfig is Config with every field defaulted and validated.
type ResolvedConfig struct {
	Binary            string
	Extension         ExtensionSource
	Headless          bool
	WindowWidth       int
	WindowHeight      int
	ProfilePath       string
	Proxy             *ProxyConfig
	Port              int
	HandshakeTimeout  time.Duration
	CommandTimeout    time.Duration
	EventReplyTimeout time.Duration
	ShutdownGrace     time.Duration
}

// Resolve validates cfg and fills in defaults. It returns a
// FirefoxNotFound error if the binary cannot be found, and a Config
// error if the extension source is missing or invalid or the proxy
// config is invalid.
func (cfg Config) Resolve() (ResolvedConfig, error) {
	resolved := ResolvedConfig{
		Binary:            cfg.Binary,
		Extension:         cfg.Extension,
		Headless:          cfg.Headless,
		WindowWidth:       cfg.WindowWidth,
		WindowHeight:      cfg.WindowHeight,
		ProfilePath:       cfg.ProfilePath,
		Proxy:             cfg.Proxy,
		Port:              cfg.Port,
		HandshakeTimeout:  orDefault(cfg.HandshakeTimeout, DefaultHandshakeTimeout),
		CommandTimeout:    orDefault(cfg.CommandTimeout, DefaultCommandTimeout),
		EventReplyTimeout: orDefault(cfg.EventReplyTimeout, DefaultEventReplyTimeout),
		ShutdownGrace:     orDefault(cfg.ShutdownGrace, DefaultShutdownGrace),
	}

	if resolved.Binary == "" {
		found, err := findFirefoxBinary()
		if err != nil {
			return ResolvedConfig{}, err
		}
		resolved.Binary = found
	}
	if _, err := os.Stat(resolved.Binary); err != nil {
		return ResolvedConfig{}, NewError(ErrFirefoxNotFound, fmt.Sprintf("firefox not found at: %s", resolved.Binary)).withField("path", resolved.Binary)
	}

	if resolved.Extension == nil {
		return ResolvedConfig{}, NewError(ErrConfig, "no extension source configured")
	}
	if err := resolved.Extension.validate(); err != nil {
		return ResolvedConfig{}, NewError(ErrConfig, fmt.Sprintf("invalid extension source: %v", err))
	}

	if resolved.Proxy != nil {
		if err := resolved.Proxy.validate(); err != nil {
			return ResolvedConfig{}, NewError(ErrConfig, fmt.Sprintf("invalid proxy config: %v", err))
		}
	}

	return resolved, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
