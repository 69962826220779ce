package browser

import (
	"encoding/json"
	"fmt"
)

// Four envelope shapes travel over the socket. commandFrame and
// eventReplyFrame are outbound-only; inboundEnvelope is the one shape
// decoded off the wire, then split into a response or an event by
// decodeInbound depending on its "type" field.

// commandFrame is a Command (client -> remote).
type commandFrame struct {
	ID      RequestId `json:"id"`
	Method  string    `json:"method"`
	TabID   TabId     `json:"tabId"`
	FrameID FrameId   `json:"frameId"`
	Params  any       `json:"params,omitempty"`
}

// eventReplyFrame is an EventReply (client -> remote), correlated by
// the triggering event's id.
type eventReplyFrame struct {
	ID      RequestId `json:"id"`
	ReplyTo string    `json:"replyTo"`
	Result  any       `json:"result"`
}

// inboundEnvelope is the shape every frame off the wire decodes into
// before classification. Response and Event frames share this shape;
// which fields are populated depends on "type".
type inboundEnvelope struct {
	ID      json.RawMessage `json:"id"`
	Type    string          `json:"type"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// response is a decoded Response frame (remote -> client).
type response struct {
	ID      RequestId
	Success bool
	Result  Result
	ErrCode string
	ErrMsg  string
}

// wireEvent is a decoded Event frame (remote -> client).
type wireEvent struct {
	ID     RequestId // correlation handle for an EventReply, if any
	Method string
	Params json.RawMessage
}

// Result wraps a decoded success payload with the zero-value dynamic
// getters the reference implementation exposes on its Response type,
// for callers that want one field out of an untyped result without
// fully unmarshaling into a typed struct.
type Result struct {
	raw json.RawMessage
}

func (r Result) GetString(key string) string {
	var m map[string]json.RawMessage
	if json.Unmarshal(r.raw, &m) != nil {
		return ""
	}
	var s string
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func (r Result) GetUint64(key string) uint64 {
	var m map[string]json.RawMessage
	if json.Unmarshal(r.raw, &m) != nil {
		return 0
	}
	var n uint64
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &n)
	}
	return n
}

func (r Result) GetBool(key string) bool {
	var m map[string]json.RawMessage
	if json.Unmarshal(r.raw, &m) != nil {
		return false
	}
	var b bool
	if v, ok := m[key]; ok {
		_ = json.Unmarshal(v, &b)
	}
	return b
}

// Decode unmarshals the success result into v.
func (r Result) Decode(v any) error {
	if len(r.raw) == 0 {
		return nil
	}
	return json.Unmarshal(r.raw, v)
}

// encodeCommand serializes a Command envelope for writing to the socket.
func encodeCommand(id RequestId, method string, tabID TabId, frameID FrameId, params any) ([]byte, error) {
	frame := commandFrame{ID: id, Method: method, TabID: tabID, FrameID: frameID, Params: params}
	data, err := json.Marshal(frame)
	if err != nil {
		return nil, WrapError(ErrJSON, err)
	}
	return data, nil
}

// encodeEventReply serializes an EventReply envelope.
func encodeEventReply(reply eventReplyFrame) ([]byte, error) {
	data, err := json.Marshal(reply)
	if err != nil {
		return nil, WrapError(ErrJSON, err)
	}
	return data, nil
}

// decodeInbound classifies a raw wire frame as a response or an event.
// Exactly one of the two return values is non-nil on success.
func decodeInbound(data []byte) (*response, *wireEvent, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, nil, WrapError(ErrJSON, err)
	}

	var id RequestId
	if len(env.ID) > 0 && string(env.ID) != "null" {
		if err := json.Unmarshal(env.ID, &id); err != nil {
			return nil, nil, NewError(ErrProtocol, fmt.Sprintf("malformed frame id: %v", err))
		}
	}

	if env.Type == "event" {
		return nil, &wireEvent{ID: id, Method: env.Method, Params: env.Params}, nil
	}

	resp := &response{ID: id}
	switch env.Type {
	case "success":
		resp.Success = true
		resp.Result = Result{raw: env.Result}
	case "error":
		resp.Success = false
		resp.ErrCode = env.Error
		resp.ErrMsg = env.Message
	default:
		return nil, nil, NewError(ErrProtocol, fmt.Sprintf("unknown response type: %q", env.Type))
	}
	return resp, nil, nil
}

// readyPayload is the decoded result of the nil-UUID handshake Response.
type readyPayload struct {
	SessionId SessionId
	TabId     TabId
}

// parseReady validates that resp is a well-formed READY handshake frame
// and extracts its payload. Any deviation is a Protocol error that must
// terminate the socket per §4.1.
func parseReady(resp *response) (readyPayload, error) {
	if !resp.ID.isNil() {
		return readyPayload{}, NewError(ErrProtocol, "first frame was not the nil-UUID READY handshake")
	}
	if !resp.Success {
		return readyPayload{}, NewError(ErrProtocol, "READY handshake reported an error")
	}
	sessionID := resp.Result.GetUint64("sessionId")
	tabID := resp.Result.GetUint64("tabId")
	if sessionID == 0 {
		return readyPayload{}, NewError(ErrProtocol, "READY handshake missing non-zero sessionId")
	}
	return readyPayload{SessionId: SessionId(sessionID), TabId: TabId(tabID)}, nil
}

// encodeReady serializes the READY handshake frame a test harness (or a
// real extension double) sends as the first frame on a new socket.
func encodeReady(sessionID SessionId, tabID TabId) ([]byte, error) {
	frame := struct {
		ID     RequestId `json:"id"`
		Type   string    `json:"type"`
		Result struct {
			SessionId SessionId `json:"sessionId"`
			TabId     TabId     `json:"tabId"`
		} `json:"result"`
	}{ID: nilRequestID, Type: "success"}
	frame.Result.SessionId = sessionID
	frame.Result.TabId = tabID
	data, err := json.Marshal(frame)
	if err != nil {
		return nil, WrapError(ErrJSON, err)
	}
	return data, nil
}
