package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flintwood/foxdrift/internal/logx"
)

// subscriptionCallback is a plain, fire-and-forget event callback.
type subscriptionCallback func(method string, params json.RawMessage)

// interceptDecider is a reply-requiring event callback: it must produce
// a decision, and is always run with a bounded deadline.
type interceptDecider func(ctx context.Context, method string, params json.RawMessage) InterceptDecision

// topicKey addresses a plain event that carries no subscriptionId —
// browsingContext.load et al., network.requestBody, network.responseStarted,
// network.responseCompleted — by its inherent topic instead, per §9's
// open-question resolution: broadcast per tab, not per explicit subscription.
type topicKey struct {
	method string
	tabID  TabId
}

// topicEntry pairs a registered topic callback with the handle
// TopicSubscriptionId its caller uses to remove it again. The handle is
// a purely local bookkeeping value — unlike SubscriptionId/InterceptId
// it never crosses the wire, since topic events aren't opted into by id.
type topicEntry struct {
	handle TopicSubscriptionId
	cb     subscriptionCallback
}

// TopicSubscriptionId identifies a registered topic callback for later
// removal via Connection.UnsubscribeTopic.
type TopicSubscriptionId uint64

var topicHandleCounter atomic.Uint64

func newTopicSubscriptionId() TopicSubscriptionId {
	return TopicSubscriptionId(topicHandleCounter.Add(1))
}

// pendingSlot is the one-shot completion handle for a single in-flight
// send. Exactly one of {dispatcher, timeout, caller cancellation,
// connection-close} removes the entry from Connection.pending; the
// dispatcher and connection-close then deliver on ch, while the timeout
// and cancellation paths return directly, so the race in step 5 of
// §4.2's send protocol is decided by map deletion, not by channel
// semantics.
type pendingSlot struct {
	ch chan response
}

// Connection is a per-session duplex channel: one write queue, one
// pending-request table, three event-callback tables (subscriptions,
// intercept deciders, topic callbacks). It owns the socket
// for exactly one remote session. Every exported method is safe to call
// from multiple goroutines and from multiple *Connection values that
// alias the same underlying session — Go's garbage collector already
// gives "dropping a clone must not close the socket" for free, since a
// *Connection is just a pointer; only an explicit Close (driven by the
// pool or the supervisor, never by a caller merely letting a reference
// go out of scope) tears the socket down.
type Connection struct {
	sessionID    SessionId
	initialTabID TabId
	conn         *websocket.Conn
	cfg          ResolvedConfig

	send chan []byte

	pendingMu sync.Mutex
	pending   map[RequestId]*pendingSlot

	subsMu sync.Mutex
	subs   map[SubscriptionId]subscriptionCallback

	interceptMu sync.Mutex
	intercepts  map[InterceptId]interceptDecider

	topicMu sync.Mutex
	topics  map[topicKey][]topicEntry

	closeOnce sync.Once
	closed    chan struct{}

	// onClose is invoked exactly once, after the socket and all pending
	// requests have been torn down, so the pool can evict its routing
	// entry without racing the reader/writer goroutines.
	onClose func(SessionId)
}

func newConnection(sessionID SessionId, initialTabID TabId, conn *websocket.Conn, cfg ResolvedConfig, onClose func(SessionId)) *Connection {
	c := &Connection{
		sessionID:    sessionID,
		initialTabID: initialTabID,
		conn:         conn,
		cfg:          cfg,
		send:         make(chan []byte, 64),
		pending:      make(map[RequestId]*pendingSlot),
		subs:         make(map[SubscriptionId]subscriptionCallback),
		intercepts:   make(map[InterceptId]interceptDecider),
		topics:       make(map[topicKey][]topicEntry),
		closed:       make(chan struct{}),
		onClose:      onClose,
	}
	conn.SetReadLimit(MaxFrameSize)
	conn.SetReadDeadline(time.Now().Add(DefaultPongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(DefaultPongWait))
		return nil
	})
	return c
}

// run starts the reader and writer loops. It returns once the socket is
// gone; callers spawn it in its own goroutine.
func (c *Connection) run() {
	go c.writeLoop()
	c.readLoop()
}

// SessionID returns the session this Connection belongs to.
func (c *Connection) SessionID() SessionId { return c.sessionID }

// InitialTabID returns the tab id the READY handshake reported, i.e.
// the id of the tab Firefox opened to load the bootstrap page.
func (c *Connection) InitialTabID() TabId { return c.initialTabID }

// Send implements §4.2's send protocol: allocate an id, park a
// completion slot, enqueue the frame, and await the slot with a
// deadline that races both the caller's context and the command
// timeout.
func (c *Connection) Send(ctx context.Context, method string, tabID TabId, frameID FrameId, params any) (Result, error) {
	id := newRequestId()
	slot := &pendingSlot{ch: make(chan response, 1)}

	c.pendingMu.Lock()
	if len(c.pending) >= MaxPendingRequests {
		c.pendingMu.Unlock()
		return Result{}, NewError(ErrProtocol, fmt.Sprintf("too many pending requests: %d/%d", len(c.pending), MaxPendingRequests))
	}
	c.pending[id] = slot
	c.pendingMu.Unlock()

	frame, err := encodeCommand(id, method, tabID, frameID, params)
	if err != nil {
		c.removePending(id)
		return Result{}, err
	}

	select {
	case c.send <- frame:
	case <-c.closed:
		c.removePending(id)
		return Result{}, NewError(ErrConnectionClosed, "connection closed before send could be enqueued")
	}

	timer := time.NewTimer(c.cfg.CommandTimeout)
	defer timer.Stop()

	select {
	case res := <-slot.ch:
		if res.Success {
			return res.Result, nil
		}
		return Result{}, mapRemoteError(res.ErrCode, res.ErrMsg)

	case <-timer.C:
		if c.removePending(id) {
			return Result{}, NewError(ErrRequestTimeout, fmt.Sprintf("request %s timed out after %dms", id, c.cfg.CommandTimeout.Milliseconds())).withField("request_id", id.String())
		}
		// The dispatcher already removed it and is racing to deliver;
		// wait briefly for the result it already has in hand.
		res := <-slot.ch
		if res.Success {
			return res.Result, nil
		}
		return Result{}, mapRemoteError(res.ErrCode, res.ErrMsg)

	case <-ctx.Done():
		if c.removePending(id) {
			return Result{}, WrapError(ErrRequestTimeout, ctx.Err())
		}
		// The dispatcher (or Close) already removed the slot and is
		// delivering its outcome; report that instead.
		res := <-slot.ch
		if res.Success {
			return res.Result, nil
		}
		return Result{}, mapRemoteError(res.ErrCode, res.ErrMsg)

	case <-c.closed:
		c.removePending(id)
		return Result{}, NewError(ErrConnectionClosed, "connection closed while request was in flight")
	}
}

// removePending deletes id from the pending table, reporting whether
// this call was the one that removed it (i.e. won the race against the
// dispatcher).
func (c *Connection) removePending(id RequestId) bool {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if _, ok := c.pending[id]; !ok {
		return false
	}
	delete(c.pending, id)
	return true
}

// Subscribe idempotently registers a plain, fire-and-forget callback.
func (c *Connection) Subscribe(id SubscriptionId, cb subscriptionCallback) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.subs[id] = cb
}

// Unsubscribe idempotently removes a plain callback.
func (c *Connection) Unsubscribe(id SubscriptionId) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	delete(c.subs, id)
}

// SubscribeTopic registers a plain callback for a topic-addressed event
// — one with no subscriptionId of its own, broadcast per tab — and
// returns a handle for later removal via UnsubscribeTopic.
func (c *Connection) SubscribeTopic(method string, tabID TabId, cb subscriptionCallback) TopicSubscriptionId {
	handle := newTopicSubscriptionId()
	key := topicKey{method: method, tabID: tabID}
	c.topicMu.Lock()
	c.topics[key] = append(c.topics[key], topicEntry{handle: handle, cb: cb})
	c.topicMu.Unlock()
	return handle
}

// UnsubscribeTopic removes a topic callback registered by SubscribeTopic.
// A no-op if the handle is unknown or already removed.
func (c *Connection) UnsubscribeTopic(handle TopicSubscriptionId) {
	c.topicMu.Lock()
	defer c.topicMu.Unlock()
	for key, entries := range c.topics {
		for i, e := range entries {
			if e.handle == handle {
				c.topics[key] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// topicCallbacks returns a snapshot of the callbacks registered for key,
// safe to invoke without holding topicMu.
func (c *Connection) topicCallbacks(key topicKey) []subscriptionCallback {
	c.topicMu.Lock()
	defer c.topicMu.Unlock()
	entries := c.topics[key]
	if len(entries) == 0 {
		return nil
	}
	cbs := make([]subscriptionCallback, len(entries))
	for i, e := range entries {
		cbs[i] = e.cb
	}
	return cbs
}

// AddIntercept idempotently registers a reply-requiring decider.
func (c *Connection) AddIntercept(id InterceptId, decider interceptDecider) {
	c.interceptMu.Lock()
	defer c.interceptMu.Unlock()
	c.intercepts[id] = decider
}

// RemoveIntercept idempotently removes a decider.
func (c *Connection) RemoveIntercept(id InterceptId) {
	c.interceptMu.Lock()
	defer c.interceptMu.Unlock()
	delete(c.intercepts, id)
}

// Close tears the connection down: closes the socket, fails every
// pending request with ConnectionClosed, and drops every callback. Safe
// to call more than once and from more than one goroutine.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.Close()

		c.pendingMu.Lock()
		pending := c.pending
		c.pending = make(map[RequestId]*pendingSlot)
		c.pendingMu.Unlock()

		closedErr := response{Success: false, ErrCode: "connection closed", ErrMsg: "connection closed"}
		for _, slot := range pending {
			select {
			case slot.ch <- closedErr:
			default:
			}
		}

		c.subsMu.Lock()
		c.subs = make(map[SubscriptionId]subscriptionCallback)
		c.subsMu.Unlock()

		c.interceptMu.Lock()
		c.intercepts = make(map[InterceptId]interceptDecider)
		c.interceptMu.Unlock()

		c.topicMu.Lock()
		c.topics = make(map[topicKey][]topicEntry)
		c.topicMu.Unlock()

		if c.onClose != nil {
			c.onClose(c.sessionID)
		}
	})
}

func (c *Connection) writeLoop() {
	ticker := time.NewTicker(DefaultPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(DefaultWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				c.Close()
				return
			}
			if _, err := w.Write(frame); err != nil {
				w.Close()
				c.Close()
				return
			}
			if err := w.Close(); err != nil {
				c.Close()
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(DefaultWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.closed:
			return
		}
	}
}

func (c *Connection) readLoop() {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logx.Warnf("connection %d: unexpected close: %v", c.sessionID, err)
			}
			return
		}

		resp, event, err := decodeInbound(data)
		if err != nil {
			logx.Errorf("connection %d: framing error: %v", c.sessionID, err)
			return
		}

		if event != nil {
			dispatchEvent(c, event)
			continue
		}
		dispatchResponse(c, resp)
	}
}
