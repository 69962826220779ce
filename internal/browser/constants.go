package browser

import "time"

// Default ports and timeouts for the driver's control core.
const (
	// DefaultBindIP is the loopback address the pool listens on.
	DefaultBindIP = "127.0.0.1"

	// DefaultCommandTimeout bounds a single Connection.Send call.
	DefaultCommandTimeout = 30 * time.Second

	// DefaultHandshakeTimeout bounds how long the supervisor waits for
	// the extension's READY frame after launching Firefox.
	DefaultHandshakeTimeout = 30 * time.Second

	// DefaultEventReplyTimeout bounds an intercept decider; on expiry the
	// dispatcher falls back to an "allow" reply.
	DefaultEventReplyTimeout = 30 * time.Second

	// DefaultShutdownGrace is how long Close waits for Firefox to exit
	// after a graceful termination signal before sending SIGKILL.
	DefaultShutdownGrace = 5 * time.Second

	// MaxPendingRequests caps in-flight requests per Connection. Carried
	// over from the reference implementation's transport layer; without
	// it a wedged remote lets callers pile up indefinitely.
	MaxPendingRequests = 100

	// DefaultWriteWait bounds a single frame write to the socket.
	DefaultWriteWait = 10 * time.Second

	// DefaultPongWait bounds how long the pool waits for a pong before
	// considering a session's socket dead.
	DefaultPongWait = 60 * time.Second

	// DefaultPingPeriod is how often the pool pings a session's socket.
	// Must stay below DefaultPongWait.
	DefaultPingPeriod = (DefaultPongWait * 9) / 10

	// MaxFrameSize is the largest single wire frame the pool will read
	// from a session's socket.
	MaxFrameSize = 1 << 20 // 1MB
)

// nilUUIDString is the literal form of the READY handshake's correlation id.
const nilUUIDString = "00000000-0000-0000-0000-000000000000"
