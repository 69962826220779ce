package browser

import (
	"encoding/json"
	"net/url"
	"strings"
)

// bootstrapTemplate is the page Firefox loads as its first tab. It posts
// a WEBDRIVER_INIT message to the window the instant it paints; the
// extension's content script is the only thing listening for it, and it
// validates the message's origin is loopback before forwarding it to
// the background script — this page is the sole channel by which a
// freshly-launched session learns its own id.
const bootstrapTemplate = `<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>foxdrift</title></head>
<body>
<script>window.postMessage($CONFIG_JSON, '*');</script>
</body></html>`

// buildBootstrapURI renders the bootstrap page for sessionID against
// wsURL and encodes it as a data: URI suitable for Firefox's start-URL
// argument. The payload is trusted, driver-generated content rather
// than user input, so a literal template substitution is enough; no
// html/template escaping pass is needed.
func buildBootstrapURI(wsURL string, sessionID SessionId) (string, error) {
	config := struct {
		Type      string    `json:"type"`
		WSURL     string    `json:"wsUrl"`
		SessionID SessionId `json:"sessionId"`
	}{Type: "WEBDRIVER_INIT", WSURL: wsURL, SessionID: sessionID}

	configJSON, err := json.Marshal(config)
	if err != nil {
		return "", WrapError(ErrJSON, err)
	}

	page := strings.ReplaceAll(bootstrapTemplate, "$CONFIG_JSON", string(configJSON))
	// QueryEscape writes spaces as '+', which a data: URI does not decode
	// back to a space; a literal '+' is already escaped as %2B.
	return "data:text/html," + strings.ReplaceAll(url.QueryEscape(page), "+", "%20"), nil
}
