package browser

import "fmt"

// ErrorKind is the closed set of error kinds the driver core can surface.
// Every DriverError carries exactly one kind; callers classify failures
// through the Is* predicates rather than switching on Kind directly,
// since the membership of each predicate's set is part of the contract,
// not an implementation detail.
type ErrorKind uint8

const (
	ErrConfig ErrorKind = iota
	ErrProfile
	ErrFirefoxNotFound
	ErrProcessLaunchFailed
	ErrConnection
	ErrConnectionTimeout
	ErrConnectionClosed
	ErrUnknownCommand
	ErrInvalidArgument
	ErrProtocol
	ErrElementNotFound
	ErrStaleElement
	ErrFrameNotFound
	ErrTabNotFound
	ErrInterceptNotFound
	ErrScriptError
	ErrTimeout
	ErrRequestTimeout
	ErrSessionNotFound
	ErrIO
	ErrJSON
	ErrWebSocket
	ErrChannelClosed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrConfig:
		return "Config"
	case ErrProfile:
		return "Profile"
	case ErrFirefoxNotFound:
		return "FirefoxNotFound"
	case ErrProcessLaunchFailed:
		return "ProcessLaunchFailed"
	case ErrConnection:
		return "Connection"
	case ErrConnectionTimeout:
		return "ConnectionTimeout"
	case ErrConnectionClosed:
		return "ConnectionClosed"
	case ErrUnknownCommand:
		return "UnknownCommand"
	case ErrInvalidArgument:
		return "InvalidArgument"
	case ErrProtocol:
		return "Protocol"
	case ErrElementNotFound:
		return "ElementNotFound"
	case ErrStaleElement:
		return "StaleElement"
	case ErrFrameNotFound:
		return "FrameNotFound"
	case ErrTabNotFound:
		return "TabNotFound"
	case ErrInterceptNotFound:
		return "InterceptNotFound"
	case ErrScriptError:
		return "ScriptError"
	case ErrTimeout:
		return "Timeout"
	case ErrRequestTimeout:
		return "RequestTimeout"
	case ErrSessionNotFound:
		return "SessionNotFound"
	case ErrIO:
		return "Io"
	case ErrJSON:
		return "Json"
	case ErrWebSocket:
		return "WebSocket"
	case ErrChannelClosed:
		return "ChannelClosed"
	default:
		return "Unknown"
	}
}

// DriverError is the single error type returned across the driver core's
// public surface. It carries whichever fields are relevant to its Kind;
// Fields is a grab-bag rather than per-kind structs because callers are
// expected to branch on Kind (or the Is* predicates) and read the one or
// two fields that kind documents, not to pattern-match structurally.
type DriverError struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]any
	Wrapped error
}

// NewError constructs a DriverError of the given kind.
func NewError(kind ErrorKind, message string) *DriverError {
	return &DriverError{Kind: kind, Message: message}
}

// WrapError constructs a DriverError wrapping an adapter-level error
// (io, json, websocket) so errors.Is/errors.As still see the original.
func WrapError(kind ErrorKind, err error) *DriverError {
	return &DriverError{Kind: kind, Message: err.Error(), Wrapped: err}
}

func (e *DriverError) withField(key string, value any) *DriverError {
	if e.Fields == nil {
		e.Fields = make(map[string]any, 1)
	}
	e.Fields[key] = value
	return e
}

func (e *DriverError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s %v", e.Kind, e.Message, e.Fields)
}

func (e *DriverError) Unwrap() error {
	return e.Wrapped
}

// IsTimeout reports whether e is one of the timeout-family kinds.
func (e *DriverError) IsTimeout() bool {
	switch e.Kind {
	case ErrConnectionTimeout, ErrTimeout, ErrRequestTimeout:
		return true
	}
	return false
}

// IsElementError reports whether e originates from stale DOM state.
func (e *DriverError) IsElementError() bool {
	switch e.Kind {
	case ErrElementNotFound, ErrStaleElement:
		return true
	}
	return false
}

// IsConnectionError reports whether e originates from the transport.
func (e *DriverError) IsConnectionError() bool {
	switch e.Kind {
	case ErrConnection, ErrConnectionTimeout, ErrConnectionClosed, ErrWebSocket:
		return true
	}
	return false
}

// IsRecoverable reports whether retrying the operation that produced e
// is a reasonable strategy. Structural misconfiguration and protocol
// invalidation are never recoverable.
func (e *DriverError) IsRecoverable() bool {
	switch e.Kind {
	case ErrConnectionTimeout, ErrTimeout, ErrRequestTimeout, ErrStaleElement:
		return true
	}
	return false
}

// remoteErrorCodes maps the wire protocol's remote error codes (§4.1) to
// local error kinds. Every listed code has its own entry, but the closed
// kind set has no separate kind for a missing script or an unspecified
// remote failure: "no such script" and "script error" both map to
// ErrScriptError, and "unknown error" maps to ErrProtocol, the same kind
// mapRemoteError uses for any code not listed here.
var remoteErrorCodes = map[string]ErrorKind{
	"unknown command":  ErrUnknownCommand,
	"invalid argument":  ErrInvalidArgument,
	"no such element":  ErrElementNotFound,
	"stale element":    ErrStaleElement,
	"no such frame":    ErrFrameNotFound,
	"no such tab":      ErrTabNotFound,
	"no such intercept": ErrInterceptNotFound,
	"no such script":   ErrScriptError,
	"script error":     ErrScriptError,
	"timeout":          ErrTimeout,
	"connection closed": ErrConnectionClosed,
	"session not found": ErrSessionNotFound,
	"unknown error":    ErrProtocol,
}

// mapRemoteError turns a wire-level error code + message into a DriverError.
func mapRemoteError(code, message string) *DriverError {
	kind, ok := remoteErrorCodes[code]
	if !ok {
		kind = ErrProtocol
	}
	return NewError(kind, message)
}
