package browser

import (
	"context"
	"encoding/json"
	"os/exec"
	"sync"
	"sync/atomic"
)

// windowInner is the single owner of a spawned Firefox process, its
// profile, and its Connection. Window values are cheap handles onto a
// shared *windowInner; cloning a Window bumps refs so the last handle
// out, not garbage collection, decides when the process actually dies.
type windowInner struct {
	sessionID SessionId
	tabID     TabId
	pool      *ConnectionPool
	conn      *Connection
	cmd       *exec.Cmd
	profile   *profile
	cfg       ResolvedConfig

	refs      atomic.Int32
	closeOnce sync.Once
}

// Window is a handle to one spawned Firefox instance. The zero value is
// not usable; obtain one from Driver.Spawn or Window.Clone.
type Window struct {
	inner *windowInner
}

func newWindow(res *spawnResult, pool *ConnectionPool, cfg ResolvedConfig) Window {
	inner := &windowInner{
		sessionID: res.sessionID,
		tabID:     res.tabID,
		pool:      pool,
		conn:      res.conn,
		cmd:       res.cmd,
		profile:   res.profile,
		cfg:       cfg,
	}
	inner.refs.Store(1)
	return Window{inner: inner}
}

// Clone returns a second independent handle to the same underlying
// window, incrementing its reference count. The process and its
// Connection stay alive until every clone (including the original) has
// been Closed.
func (w Window) Clone() Window {
	w.inner.refs.Add(1)
	return Window{inner: w.inner}
}

// SessionID returns the window's session id.
func (w Window) SessionID() SessionId { return w.inner.sessionID }

// InitialTabID returns the id of the tab Firefox opened for the
// bootstrap page.
func (w Window) InitialTabID() TabId { return w.inner.tabID }

// Port returns the pool port this window's Connection is routed through.
func (w Window) Port() int { return w.inner.pool.Port() }

// PID returns the Firefox process id, or 0 if the process has already
// exited and been reaped.
func (w Window) PID() int {
	if w.inner.cmd == nil || w.inner.cmd.Process == nil {
		return 0
	}
	return w.inner.cmd.Process.Pid
}

// Send issues a raw command against this window's connection. Prefer
// the typed per-verb methods below; this exists for verbs this package
// hasn't wrapped yet and for tests.
func (w Window) Send(ctx context.Context, method string, tabID TabId, frameID FrameId, params any) (Result, error) {
	return w.inner.conn.Send(ctx, method, tabID, frameID, params)
}

// Subscribe registers a plain callback under a freshly allocated
// SubscriptionId and returns it so the caller can pass it as the
// correlating id in the matching element.watch* command's params.
func (w Window) Subscribe(cb func(method string, params json.RawMessage)) SubscriptionId {
	id := newSubscriptionId()
	w.inner.conn.Subscribe(id, cb)
	return id
}

// Unsubscribe removes a previously registered subscription.
func (w Window) Unsubscribe(id SubscriptionId) {
	w.inner.conn.Unsubscribe(id)
}

// AddIntercept registers a reply-requiring decider under a freshly
// allocated InterceptId and returns it so the caller can pass it to
// network.addIntercept.
func (w Window) AddIntercept(decider func(ctx context.Context, method string, params json.RawMessage) InterceptDecision) InterceptId {
	id := newInterceptId()
	w.inner.conn.AddIntercept(id, decider)
	return id
}

// RemoveIntercept removes a previously registered intercept decider.
func (w Window) RemoveIntercept(id InterceptId) {
	w.inner.conn.RemoveIntercept(id)
}

// Close releases this handle. Once every clone of a window has been
// closed, the underlying Connection is shut down, the Firefox process
// is killed per §4.4's graceful-then-forceful sequence, the profile is
// cleaned up if it was ephemeral, and the pool's routing entry is
// dropped. Each call releases one reference, so closing the same handle
// twice also releases a reference a clone still holds; once the
// teardown has run, further calls are no-ops.
func (w Window) Close() error {
	if w.inner.refs.Add(-1) > 0 {
		return nil
	}
	w.inner.closeOnce.Do(func() {
		w.inner.conn.Close()
		killFirefox(w.inner.cmd, w.inner.cfg.ShutdownGrace)
		w.inner.pool.Remove(w.inner.sessionID)
		w.inner.profile.cleanup()
	})
	return nil
}
