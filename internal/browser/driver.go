package browser

import (
	"context"
	"sync"
)

// Driver is the top-level handle applications hold: one bound
// ConnectionPool, one resolved Config, and the live set of windows it
// has spawned. A Driver is safe for concurrent use.
type Driver struct {
	pool *ConnectionPool
	cfg  ResolvedConfig

	counter sessionIdCounter

	mu      sync.Mutex
	windows map[SessionId]Window
}

// NewDriver resolves cfg and binds the connection pool. The pool starts
// listening immediately; no window is spawned until Spawn is called.
func NewDriver(cfg Config) (*Driver, error) {
	resolved, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	pool, err := NewConnectionPool(resolved)
	if err != nil {
		return nil, err
	}

	return &Driver{
		pool:    pool,
		cfg:     resolved,
		windows: make(map[SessionId]Window),
	}, nil
}

// Port returns the driver's bound listen port.
func (d *Driver) Port() int { return d.pool.Port() }

// WindowCount returns the number of windows currently tracked as open.
func (d *Driver) WindowCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.windows)
}

// Spawn launches a new Firefox process, blocks until its READY
// handshake completes, and returns a Window handle for it. The
// returned Window is also tracked internally so Driver.Close can tear
// every live window down.
func (d *Driver) Spawn(ctx context.Context) (Window, error) {
	sessionID := d.counter.nextID()

	res, err := spawnFirefox(ctx, d.pool, d.cfg, sessionID)
	if err != nil {
		return Window{}, err
	}

	win := newWindow(res, d.pool, d.cfg)

	d.mu.Lock()
	d.windows[sessionID] = win
	d.mu.Unlock()

	return win, nil
}

// CloseWindow closes and untracks a single window by session id. A
// no-op if the session isn't tracked.
func (d *Driver) CloseWindow(sessionID SessionId) error {
	d.mu.Lock()
	win, ok := d.windows[sessionID]
	if ok {
		delete(d.windows, sessionID)
	}
	d.mu.Unlock()
	if !ok {
		return nil
	}
	return win.Close()
}

// Close closes every live window, then shuts the pool's listener down.
// The Driver is unusable afterwards.
func (d *Driver) Close(ctx context.Context) error {
	d.mu.Lock()
	windows := make([]Window, 0, len(d.windows))
	for _, w := range d.windows {
		windows = append(windows, w)
	}
	d.windows = make(map[SessionId]Window)
	d.mu.Unlock()

	for _, w := range windows {
		w.Close()
	}

	return d.pool.Shutdown(ctx)
}
