package browser

import (
	"encoding/json"
	"sync/atomic"

	"github.com/google/uuid"
)

// SessionId is a non-zero, driver-assigned, monotonically increasing
// identifier. Unique within a single Driver's lifetime; echoed in the
// READY frame and embedded in the bootstrap data URI.
type SessionId uint32

// sessionIdCounter backs the per-Driver SessionId allocator. Each
// Driver keeps its own counter (see driver.go) so that two Drivers in
// the same process never hand out the same id on the same port, but the
// underlying type stays a plain uint32 so callers can log/compare it
// without ceremony.
type sessionIdCounter struct {
	next atomic.Uint32
}

func (c *sessionIdCounter) nextID() SessionId {
	return SessionId(c.next.Add(1))
}

// TabId and FrameId are extension-assigned and opaque to the core; the
// core only ever forwards them verbatim inside command envelopes.
type TabId uint32

// FrameId uses 0 to mean the top-level frame.
type FrameId uint64

const MainFrame FrameId = 0

// RequestId, ElementId, ScriptId, SubscriptionId and InterceptId are
// 128-bit random identifiers (UUIDv4), distinguished only by which
// table they key in a Connection.
type (
	RequestId      uuid.UUID
	ElementId      uuid.UUID
	ScriptId       uuid.UUID
	SubscriptionId uuid.UUID
	InterceptId    uuid.UUID
)

func newRequestId() RequestId      { return RequestId(uuid.New()) }
func newSubscriptionId() SubscriptionId { return SubscriptionId(uuid.New()) }
func newInterceptId() InterceptId  { return InterceptId(uuid.New()) }

func (id RequestId) String() string      { return uuid.UUID(id).String() }
func (id ElementId) String() string      { return uuid.UUID(id).String() }
func (id ScriptId) String() string       { return uuid.UUID(id).String() }
func (id SubscriptionId) String() string { return uuid.UUID(id).String() }
func (id InterceptId) String() string    { return uuid.UUID(id).String() }

// unmarshalUUIDJSON decodes a JSON string into a uuid.UUID. It exists
// because the identifier types below wrap uuid.UUID rather than
// embedding it, so they can't inherit its encoding.TextUnmarshaler
// implementation for free.
func unmarshalUUIDJSON(b []byte) (uuid.UUID, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return uuid.UUID{}, err
	}
	return uuid.Parse(s)
}

func (id RequestId) MarshalJSON() ([]byte, error) { return json.Marshal(uuid.UUID(id).String()) }
func (id *RequestId) UnmarshalJSON(b []byte) error {
	u, err := unmarshalUUIDJSON(b)
	if err != nil {
		return err
	}
	*id = RequestId(u)
	return nil
}

func (id ElementId) MarshalJSON() ([]byte, error) { return json.Marshal(uuid.UUID(id).String()) }
func (id *ElementId) UnmarshalJSON(b []byte) error {
	u, err := unmarshalUUIDJSON(b)
	if err != nil {
		return err
	}
	*id = ElementId(u)
	return nil
}

func (id ScriptId) MarshalJSON() ([]byte, error) { return json.Marshal(uuid.UUID(id).String()) }
func (id *ScriptId) UnmarshalJSON(b []byte) error {
	u, err := unmarshalUUIDJSON(b)
	if err != nil {
		return err
	}
	*id = ScriptId(u)
	return nil
}

func (id SubscriptionId) MarshalJSON() ([]byte, error) { return json.Marshal(uuid.UUID(id).String()) }
func (id *SubscriptionId) UnmarshalJSON(b []byte) error {
	u, err := unmarshalUUIDJSON(b)
	if err != nil {
		return err
	}
	*id = SubscriptionId(u)
	return nil
}

func (id InterceptId) MarshalJSON() ([]byte, error) { return json.Marshal(uuid.UUID(id).String()) }
func (id *InterceptId) UnmarshalJSON(b []byte) error {
	u, err := unmarshalUUIDJSON(b)
	if err != nil {
		return err
	}
	*id = InterceptId(u)
	return nil
}

// nilRequestID is the correlation id used by the READY handshake's
// Response envelope — the literal all-zero UUID, never produced by
// newRequestId.
var nilRequestID = RequestId(uuid.Nil)

func (id RequestId) isNil() bool { return uuid.UUID(id) == uuid.Nil }
