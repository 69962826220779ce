package browser

import "encoding/json"

// Event and verb names. The transport forwards these verbatim; they are
// given named constants here because §6 treats the catalogue as part of
// the external interface (tests enumerate it), not an implementation
// detail left to string literals scattered through call sites.
const (
	VerbSessionStatus    = "session.status"
	VerbSessionStealLogs = "session.stealLogs"

	VerbNavigate             = "browsingContext.navigate"
	VerbReload               = "browsingContext.reload"
	VerbGoBack               = "browsingContext.goBack"
	VerbGoForward            = "browsingContext.goForward"
	VerbGetTitle             = "browsingContext.getTitle"
	VerbGetURL               = "browsingContext.getUrl"
	VerbNewTab               = "browsingContext.newTab"
	VerbCloseTab             = "browsingContext.closeTab"
	VerbFocusTab             = "browsingContext.focusTab"
	VerbFocusWindow          = "browsingContext.focusWindow"
	VerbSwitchToFrame        = "browsingContext.switchToFrame"
	VerbSwitchToFrameByIndex = "browsingContext.switchToFrameByIndex"
	VerbSwitchToFrameByUrl   = "browsingContext.switchToFrameByUrl"
	VerbSwitchToParentFrame  = "browsingContext.switchToParentFrame"
	VerbGetFrameCount        = "browsingContext.getFrameCount"
	VerbGetAllFrames         = "browsingContext.getAllFrames"

	VerbElementFind           = "element.find"
	VerbElementFindAll        = "element.findAll"
	VerbElementGetProperty    = "element.getProperty"
	VerbElementSetProperty    = "element.setProperty"
	VerbElementCallMethod     = "element.callMethod"
	VerbElementSubscribe      = "element.subscribe"
	VerbElementUnsubscribe    = "element.unsubscribe"
	VerbElementWatchRemoval   = "element.watchRemoval"
	VerbElementUnwatchRemoval = "element.unwatchRemoval"
	VerbElementWatchAttr      = "element.watchAttribute"
	VerbElementUnwatchAttr    = "element.unwatchAttribute"

	VerbScriptEvaluate            = "script.evaluate"
	VerbScriptEvaluateAsync       = "script.evaluateAsync"
	VerbScriptAddPreloadScript    = "script.addPreloadScript"
	VerbScriptRemovePreloadScript = "script.removePreloadScript"

	VerbInputTypeKey    = "input.typeKey"
	VerbInputTypeText   = "input.typeText"
	VerbInputMouseClick = "input.mouseClick"
	VerbInputMouseMove  = "input.mouseMove"
	VerbInputMouseDown  = "input.mouseDown"
	VerbInputMouseUp    = "input.mouseUp"

	VerbNetworkAddIntercept    = "network.addIntercept"
	VerbNetworkRemoveIntercept = "network.removeIntercept"
	VerbNetworkSetBlockRules   = "network.setBlockRules"
	VerbNetworkClearBlockRules = "network.clearBlockRules"

	VerbProxySetWindowProxy   = "proxy.setWindowProxy"
	VerbProxyClearWindowProxy = "proxy.clearWindowProxy"
	VerbProxySetTabProxy      = "proxy.setTabProxy"
	VerbProxyClearTabProxy    = "proxy.clearTabProxy"

	VerbStorageGetCookie     = "storage.getCookie"
	VerbStorageSetCookie     = "storage.setCookie"
	VerbStorageDeleteCookie  = "storage.deleteCookie"
	VerbStorageGetAllCookies = "storage.getAllCookies"
)

const (
	EventLoad              = "browsingContext.load"
	EventDOMContentLoaded  = "browsingContext.domContentLoaded"
	EventNavigationStarted = "browsingContext.navigationStarted"
	EventNavigationFailed  = "browsingContext.navigationFailed"

	EventElementAdded            = "element.added"
	EventElementRemoved          = "element.removed"
	EventElementAttributeChanged = "element.attributeChanged"

	EventNetworkBeforeRequestSent = "network.beforeRequestSent"
	EventNetworkRequestHeaders    = "network.requestHeaders"
	EventNetworkRequestBody       = "network.requestBody"
	EventNetworkResponseStarted   = "network.responseStarted"
	EventNetworkResponseHeaders   = "network.responseHeaders"
	EventNetworkResponseBody      = "network.responseBody"
	EventNetworkResponseCompleted = "network.responseCompleted"
)

// replyRequiringEvents is the closed set of event names whose delivery
// demands an EventReply within the event-reply timeout.
var replyRequiringEvents = map[string]bool{
	EventNetworkBeforeRequestSent: true,
	EventNetworkRequestHeaders:    true,
	EventNetworkResponseHeaders:   true,
	EventNetworkResponseBody:      true,
}

func isReplyRequiring(method string) bool {
	return replyRequiringEvents[method]
}

// InterceptDecision is one of the five reply payload shapes §4.5 defines.
// Action is always set; the remaining fields are only meaningful for the
// matching action.
type InterceptDecision struct {
	Action  string            `json:"action"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

func AllowDecision() InterceptDecision { return InterceptDecision{Action: "allow"} }
func BlockDecision() InterceptDecision { return InterceptDecision{Action: "block"} }
func RedirectDecision(url string) InterceptDecision {
	return InterceptDecision{Action: "redirect", URL: url}
}
func ModifyHeadersDecision(headers map[string]string) InterceptDecision {
	return InterceptDecision{Action: "modifyHeaders", Headers: headers}
}
func ModifyBodyDecision(body string) InterceptDecision {
	return InterceptDecision{Action: "modifyBody", Body: body}
}

// The structs below are the closed set of event param shapes §6
// catalogues, matching the reference implementation's ParsedEvent
// variant set one-for-one. dispatch.go itself never decodes them — it
// routes on raw JSON, by subscriptionId or by inherent topic (§9); the
// typed Window watch methods in verbs.go (ElementWatchAdded,
// BrowsingContextWatchLoad, NetworkWatchRequestBody, ...) decode into
// the matching struct before handing it to a caller's typed callback.

type NavigationParams struct {
	TabId   TabId   `json:"tabId"`
	FrameId FrameId `json:"frameId"`
	URL     string  `json:"url"`
	Error   string  `json:"error,omitempty"`
}

type ElementAddedParams struct {
	Strategy       string         `json:"strategy"`
	Value          string         `json:"value"`
	ElementId      ElementId      `json:"elementId"`
	SubscriptionId SubscriptionId `json:"subscriptionId"`
	TabId          TabId          `json:"tabId"`
	FrameId        FrameId        `json:"frameId"`
}

type ElementRemovedParams struct {
	ElementId ElementId `json:"elementId"`
	TabId     TabId     `json:"tabId"`
	FrameId   FrameId   `json:"frameId"`
}

type ElementAttributeChangedParams struct {
	ElementId     ElementId `json:"elementId"`
	AttributeName string    `json:"attributeName"`
	OldValue      string    `json:"oldValue"`
	NewValue      string    `json:"newValue"`
	TabId         TabId     `json:"tabId"`
	FrameId       FrameId   `json:"frameId"`
}

type NetworkRequestParams struct {
	InterceptId InterceptId       `json:"interceptId"`
	RequestId   string            `json:"requestId"`
	URL         string            `json:"url"`
	Method      string            `json:"method"`
	Headers     map[string]string `json:"headers,omitempty"`
	TabId       TabId             `json:"tabId"`
	FrameId     FrameId           `json:"frameId"`
}

type NetworkResponseParams struct {
	InterceptId InterceptId       `json:"interceptId"`
	RequestId   string            `json:"requestId"`
	URL         string            `json:"url"`
	StatusCode  int               `json:"statusCode"`
	Headers     map[string]string `json:"headers,omitempty"`
	TabId       TabId             `json:"tabId"`
	FrameId     FrameId           `json:"frameId"`
}

func decodeNavigationParams(raw json.RawMessage) (NavigationParams, error) {
	var p NavigationParams
	err := json.Unmarshal(raw, &p)
	return p, err
}
