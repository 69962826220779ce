package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/flintwood/foxdrift/internal/logx"
)

// ConnectionPool binds a single loopback listener for the driver's
// entire lifetime, accepts every session's socket on it, and routes
// each one into a SessionId-keyed table once its READY handshake has
// been observed. It is the sole place invariant #4 ("exactly one
// listening socket") is enforced.
type ConnectionPool struct {
	listener net.Listener
	server   *http.Server
	port     int
	cfg      ResolvedConfig

	mu          sync.RWMutex
	connections map[SessionId]*Connection

	waitersMu sync.Mutex
	waiters   map[SessionId]chan *Connection
}

// NewConnectionPool binds the listener and starts serving. The returned
// pool has exactly one net.Listener for its whole life; Shutdown is the
// only thing that ever unbinds it.
func NewConnectionPool(cfg ResolvedConfig) (*ConnectionPool, error) {
	addr := fmt.Sprintf("%s:%d", DefaultBindIP, cfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, WrapError(ErrIO, err)
	}

	p := &ConnectionPool{
		listener:    listener,
		port:        listener.Addr().(*net.TCPAddr).Port,
		cfg:         cfg,
		connections: make(map[SessionId]*Connection),
		waiters:     make(map[SessionId]chan *Connection),
	}

	router := chi.NewRouter()
	router.Get("/ws", p.handleUpgrade)
	router.Get("/healthz", p.handleHealthz)

	p.server = &http.Server{Handler: router}
	go func() {
		if err := p.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logx.Errorf("pool: serve exited: %v", err)
		}
	}()

	return p, nil
}

// URL returns the pool's WebSocket endpoint, e.g. "ws://127.0.0.1:54321/ws".
func (p *ConnectionPool) URL() string {
	return fmt.Sprintf("ws://%s:%d/ws", DefaultBindIP, p.port)
}

// Port returns the bound TCP port.
func (p *ConnectionPool) Port() int { return p.port }

// ConnectionCount returns the number of live sessions.
func (p *ConnectionPool) ConnectionCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.connections)
}

// RegisterWaiter installs a one-shot waiter for sessionID and returns
// the channel it will be delivered on. Callers MUST register the
// waiter before launching the process that will connect with this
// session id, closing the race the accept loop and the launch would
// otherwise have.
func (p *ConnectionPool) RegisterWaiter(sessionID SessionId) <-chan *Connection {
	ch := make(chan *Connection, 1)
	p.waitersMu.Lock()
	p.waiters[sessionID] = ch
	p.waitersMu.Unlock()
	return ch
}

// CancelWaiter removes a waiter that was never fulfilled, e.g. after a
// handshake timeout. Safe to call even if the waiter already fired.
func (p *ConnectionPool) CancelWaiter(sessionID SessionId) {
	p.waitersMu.Lock()
	delete(p.waiters, sessionID)
	p.waitersMu.Unlock()
}

// WaitForSession blocks until sessionID's READY frame is observed by
// the accept loop or ctx is done, whichever comes first.
func (p *ConnectionPool) WaitForSession(ctx context.Context, sessionID SessionId) (*Connection, error) {
	ch := p.RegisterWaiter(sessionID)
	select {
	case conn := <-ch:
		return conn, nil
	case <-ctx.Done():
		p.CancelWaiter(sessionID)
		return nil, WrapError(ErrConnectionTimeout, ctx.Err())
	}
}

func (p *ConnectionPool) resolveWaiter(sessionID SessionId, conn *Connection) {
	p.waitersMu.Lock()
	ch, ok := p.waiters[sessionID]
	if ok {
		delete(p.waiters, sessionID)
	}
	p.waitersMu.Unlock()
	if ok {
		ch <- conn
	}
}

// Send looks up sessionID's Connection and delegates to Connection.Send,
// failing with SessionNotFound if the session isn't (or is no longer)
// routed.
func (p *ConnectionPool) Send(ctx context.Context, sessionID SessionId, method string, tabID TabId, frameID FrameId, params any) (Result, error) {
	conn := p.get(sessionID)
	if conn == nil {
		return Result{}, NewError(ErrSessionNotFound, fmt.Sprintf("session %d not found", sessionID)).withField("session_id", uint32(sessionID))
	}
	return conn.Send(ctx, method, tabID, frameID, params)
}

func (p *ConnectionPool) get(sessionID SessionId) *Connection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.connections[sessionID]
}

// Remove evicts sessionID's Connection, closing its socket. A no-op if
// the session isn't routed.
func (p *ConnectionPool) Remove(sessionID SessionId) {
	conn := p.get(sessionID)
	if conn != nil {
		conn.Close()
	}
}

// evict is Connection.onClose: it deletes the routing-table entry. It
// must not itself call Connection.Close (that would be reentrant); by
// the time this runs the socket is already gone.
func (p *ConnectionPool) evict(sessionID SessionId) {
	p.mu.Lock()
	delete(p.connections, sessionID)
	p.mu.Unlock()
}

// Shutdown closes every live connection and releases the listener. The
// pool is unusable afterwards.
func (p *ConnectionPool) Shutdown(ctx context.Context) error {
	p.mu.RLock()
	conns := make([]*Connection, 0, len(p.connections))
	for _, c := range p.connections {
		conns = append(conns, c)
	}
	p.mu.RUnlock()

	for _, c := range conns {
		c.Close()
	}

	return p.server.Shutdown(ctx)
}

func (p *ConnectionPool) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return true }, // loopback-only listener; no browser-origin boundary to enforce
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Errorf("pool: upgrade failed: %v", err)
		return
	}

	conn.SetReadDeadline(time.Now().Add(p.cfg.HandshakeTimeout))
	_, data, err := conn.ReadMessage()
	if err != nil {
		logx.Warnf("pool: handshake read failed: %v", err)
		conn.Close()
		return
	}

	resp, event, err := decodeInbound(data)
	if err != nil || event != nil {
		logx.Warnf("pool: first frame was not a valid READY response")
		conn.Close()
		return
	}

	ready, err := parseReady(resp)
	if err != nil {
		logx.Warnf("pool: handshake rejected: %v", err)
		conn.Close()
		return
	}

	sessionConn := newConnection(ready.SessionId, ready.TabId, conn, p.cfg, p.evict)
	p.mu.Lock()
	p.connections[ready.SessionId] = sessionConn
	p.mu.Unlock()

	p.resolveWaiter(ready.SessionId, sessionConn)

	go sessionConn.run()
}

func (p *ConnectionPool) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"sessions": p.ConnectionCount()})
}
