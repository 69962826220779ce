package browser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeCommandRoundTrip(t *testing.T) {
	id := newRequestId()
	frame, err := encodeCommand(id, VerbNavigate, TabId(7), FrameId(0), map[string]string{"url": "https://example.com"})
	require.NoError(t, err)
	require.Contains(t, string(frame), `"method":"browsingContext.navigate"`)
	require.Contains(t, string(frame), `"tabId":7`)

	var decoded commandFrame
	require.NoError(t, json.Unmarshal(frame, &decoded))
	require.Equal(t, id, decoded.ID)
	require.Equal(t, VerbNavigate, decoded.Method)
	require.Equal(t, TabId(7), decoded.TabID)
	require.Equal(t, FrameId(0), decoded.FrameID)
	require.Equal(t, map[string]any{"url": "https://example.com"}, decoded.Params)
}

func TestDecodeInboundSuccessResponse(t *testing.T) {
	id := newRequestId()
	raw := []byte(`{"id":"` + id.String() + `","type":"success","result":{"title":"hi"}}`)

	resp, event, err := decodeInbound(raw)
	require.NoError(t, err)
	require.Nil(t, event)
	require.NotNil(t, resp)
	require.True(t, resp.Success)
	require.Equal(t, id, resp.ID)
	require.Equal(t, "hi", resp.Result.GetString("title"))
}

func TestDecodeInboundErrorResponse(t *testing.T) {
	id := newRequestId()
	raw := []byte(`{"id":"` + id.String() + `","type":"error","error":"no such element","message":"boom"}`)

	resp, event, err := decodeInbound(raw)
	require.NoError(t, err)
	require.Nil(t, event)
	require.False(t, resp.Success)
	require.Equal(t, "no such element", resp.ErrCode)
	require.Equal(t, "boom", resp.ErrMsg)
}

func TestDecodeInboundEvent(t *testing.T) {
	raw := []byte(`{"id":null,"type":"event","method":"browsingContext.load","params":{"tabId":3,"url":"https://x"}}`)

	resp, event, err := decodeInbound(raw)
	require.NoError(t, err)
	require.Nil(t, resp)
	require.NotNil(t, event)
	require.Equal(t, "browsingContext.load", event.Method)

	params, err := decodeNavigationParams(event.Params)
	require.NoError(t, err)
	require.Equal(t, TabId(3), params.TabId)
	require.Equal(t, "https://x", params.URL)
}

func TestDecodeInboundRejectsUnknownType(t *testing.T) {
	_, _, err := decodeInbound([]byte(`{"id":null,"type":"bogus"}`))
	require.Error(t, err)
}

func TestParseReadyAcceptsNilUUIDWithSessionID(t *testing.T) {
	raw, err := encodeReady(SessionId(42), TabId(1))
	require.NoError(t, err)

	resp, event, err := decodeInbound(raw)
	require.NoError(t, err)
	require.Nil(t, event)

	ready, err := parseReady(resp)
	require.NoError(t, err)
	require.Equal(t, SessionId(42), ready.SessionId)
	require.Equal(t, TabId(1), ready.TabId)
}

func TestParseReadyRejectsNonNilID(t *testing.T) {
	id := newRequestId()
	raw := []byte(`{"id":"` + id.String() + `","type":"success","result":{"sessionId":1,"tabId":1}}`)
	resp, _, err := decodeInbound(raw)
	require.NoError(t, err)

	_, err = parseReady(resp)
	require.Error(t, err)
}

func TestParseReadyRejectsZeroSessionID(t *testing.T) {
	raw, err := encodeReady(SessionId(0), TabId(1))
	require.NoError(t, err)
	resp, _, err := decodeInbound(raw)
	require.NoError(t, err)

	_, err = parseReady(resp)
	require.Error(t, err)
}

func TestResultGetters(t *testing.T) {
	r := Result{raw: []byte(`{"name":"firefox","count":3,"ok":true}`)}
	require.Equal(t, "firefox", r.GetString("name"))
	require.Equal(t, uint64(3), r.GetUint64("count"))
	require.True(t, r.GetBool("ok"))
	require.Equal(t, "", r.GetString("missing"))
}
