package browser

import (
	"context"
	"encoding/json"
)

// This file is the typed verb dispatch surface §6 catalogues: one thin
// method per remote verb, each shaping its params and forwarding to
// Window.Send. The element subscribe/watch and network intercept
// methods also register or remove the matching callback on the
// window's Connection, and the BrowsingContextWatch*/NetworkWatch*
// methods only register topic callbacks locally, sending nothing. They
// exist so callers get compile-time checked parameter lists instead of
// hand-building params maps at every call site.

func (w Window) SessionStatus(ctx context.Context) (Result, error) {
	return w.Send(ctx, VerbSessionStatus, 0, MainFrame, nil)
}

func (w Window) SessionStealLogs(ctx context.Context) (Result, error) {
	return w.Send(ctx, VerbSessionStealLogs, 0, MainFrame, nil)
}

func (w Window) BrowsingContextNavigate(ctx context.Context, tabID TabId, frameID FrameId, url string) (Result, error) {
	return w.Send(ctx, VerbNavigate, tabID, frameID, struct {
		URL string `json:"url"`
	}{url})
}

func (w Window) BrowsingContextReload(ctx context.Context, tabID TabId, frameID FrameId) (Result, error) {
	return w.Send(ctx, VerbReload, tabID, frameID, nil)
}

func (w Window) BrowsingContextGoBack(ctx context.Context, tabID TabId, frameID FrameId) (Result, error) {
	return w.Send(ctx, VerbGoBack, tabID, frameID, nil)
}

func (w Window) BrowsingContextGoForward(ctx context.Context, tabID TabId, frameID FrameId) (Result, error) {
	return w.Send(ctx, VerbGoForward, tabID, frameID, nil)
}

func (w Window) BrowsingContextGetTitle(ctx context.Context, tabID TabId, frameID FrameId) (string, error) {
	res, err := w.Send(ctx, VerbGetTitle, tabID, frameID, nil)
	if err != nil {
		return "", err
	}
	return res.GetString("title"), nil
}

func (w Window) BrowsingContextGetURL(ctx context.Context, tabID TabId, frameID FrameId) (string, error) {
	res, err := w.Send(ctx, VerbGetURL, tabID, frameID, nil)
	if err != nil {
		return "", err
	}
	return res.GetString("url"), nil
}

func (w Window) BrowsingContextNewTab(ctx context.Context, url string) (TabId, error) {
	res, err := w.Send(ctx, VerbNewTab, 0, MainFrame, struct {
		URL string `json:"url,omitempty"`
	}{url})
	if err != nil {
		return 0, err
	}
	return TabId(res.GetUint64("tabId")), nil
}

func (w Window) BrowsingContextCloseTab(ctx context.Context, tabID TabId) (Result, error) {
	return w.Send(ctx, VerbCloseTab, tabID, MainFrame, nil)
}

func (w Window) BrowsingContextFocusTab(ctx context.Context, tabID TabId) (Result, error) {
	return w.Send(ctx, VerbFocusTab, tabID, MainFrame, nil)
}

func (w Window) BrowsingContextFocusWindow(ctx context.Context) (Result, error) {
	return w.Send(ctx, VerbFocusWindow, 0, MainFrame, nil)
}

func (w Window) BrowsingContextSwitchToFrame(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId) (FrameId, error) {
	res, err := w.Send(ctx, VerbSwitchToFrame, tabID, frameID, struct {
		ElementId ElementId `json:"elementId"`
	}{elementID})
	if err != nil {
		return 0, err
	}
	return FrameId(res.GetUint64("frameId")), nil
}

func (w Window) BrowsingContextSwitchToFrameByIndex(ctx context.Context, tabID TabId, frameID FrameId, index int) (FrameId, error) {
	res, err := w.Send(ctx, VerbSwitchToFrameByIndex, tabID, frameID, struct {
		Index int `json:"index"`
	}{index})
	if err != nil {
		return 0, err
	}
	return FrameId(res.GetUint64("frameId")), nil
}

func (w Window) BrowsingContextSwitchToFrameByUrl(ctx context.Context, tabID TabId, frameID FrameId, url string) (FrameId, error) {
	res, err := w.Send(ctx, VerbSwitchToFrameByUrl, tabID, frameID, struct {
		URL string `json:"url"`
	}{url})
	if err != nil {
		return 0, err
	}
	return FrameId(res.GetUint64("frameId")), nil
}

func (w Window) BrowsingContextSwitchToParentFrame(ctx context.Context, tabID TabId, frameID FrameId) (FrameId, error) {
	res, err := w.Send(ctx, VerbSwitchToParentFrame, tabID, frameID, nil)
	if err != nil {
		return 0, err
	}
	return FrameId(res.GetUint64("frameId")), nil
}

func (w Window) BrowsingContextGetFrameCount(ctx context.Context, tabID TabId, frameID FrameId) (uint64, error) {
	res, err := w.Send(ctx, VerbGetFrameCount, tabID, frameID, nil)
	if err != nil {
		return 0, err
	}
	return res.GetUint64("count"), nil
}

func (w Window) BrowsingContextGetAllFrames(ctx context.Context, tabID TabId) (Result, error) {
	return w.Send(ctx, VerbGetAllFrames, tabID, MainFrame, nil)
}

// watchNavigationTopic registers cb for one of the four topic-addressed
// navigation events, broadcast per tabID rather than opted into by
// subscriptionId (see dispatchPlainEvent).
func (w Window) watchNavigationTopic(event string, tabID TabId, cb func(NavigationParams)) TopicSubscriptionId {
	return w.inner.conn.SubscribeTopic(event, tabID, func(method string, raw json.RawMessage) {
		if p, err := decodeNavigationParams(raw); err == nil {
			cb(p)
		}
	})
}

func (w Window) BrowsingContextWatchLoad(tabID TabId, cb func(NavigationParams)) TopicSubscriptionId {
	return w.watchNavigationTopic(EventLoad, tabID, cb)
}

func (w Window) BrowsingContextWatchDOMContentLoaded(tabID TabId, cb func(NavigationParams)) TopicSubscriptionId {
	return w.watchNavigationTopic(EventDOMContentLoaded, tabID, cb)
}

func (w Window) BrowsingContextWatchNavigationStarted(tabID TabId, cb func(NavigationParams)) TopicSubscriptionId {
	return w.watchNavigationTopic(EventNavigationStarted, tabID, cb)
}

func (w Window) BrowsingContextWatchNavigationFailed(tabID TabId, cb func(NavigationParams)) TopicSubscriptionId {
	return w.watchNavigationTopic(EventNavigationFailed, tabID, cb)
}

// BrowsingContextUnwatch removes a callback registered by any of the
// BrowsingContextWatch* methods above.
func (w Window) BrowsingContextUnwatch(id TopicSubscriptionId) {
	w.inner.conn.UnsubscribeTopic(id)
}

func (w Window) ElementFind(ctx context.Context, tabID TabId, frameID FrameId, strategy, value string) (ElementId, error) {
	res, err := w.Send(ctx, VerbElementFind, tabID, frameID, struct {
		Strategy string `json:"strategy"`
		Value    string `json:"value"`
	}{strategy, value})
	if err != nil {
		return ElementId{}, err
	}
	var id ElementId
	err = res.Decode(&struct {
		ElementId *ElementId `json:"elementId"`
	}{&id})
	return id, err
}

func (w Window) ElementFindAll(ctx context.Context, tabID TabId, frameID FrameId, strategy, value string) (Result, error) {
	return w.Send(ctx, VerbElementFindAll, tabID, frameID, struct {
		Strategy string `json:"strategy"`
		Value    string `json:"value"`
	}{strategy, value})
}

func (w Window) ElementGetProperty(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, name string) (Result, error) {
	return w.Send(ctx, VerbElementGetProperty, tabID, frameID, struct {
		ElementId ElementId `json:"elementId"`
		Name      string    `json:"name"`
	}{elementID, name})
}

func (w Window) ElementSetProperty(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, name string, value any) (Result, error) {
	return w.Send(ctx, VerbElementSetProperty, tabID, frameID, struct {
		ElementId ElementId `json:"elementId"`
		Name      string    `json:"name"`
		Value     any       `json:"value"`
	}{elementID, name, value})
}

func (w Window) ElementCallMethod(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, method string, args []any) (Result, error) {
	return w.Send(ctx, VerbElementCallMethod, tabID, frameID, struct {
		ElementId ElementId `json:"elementId"`
		Method    string    `json:"method"`
		Args      []any     `json:"args,omitempty"`
	}{elementID, method, args})
}

// ElementSubscribe registers a plain callback for arbitrary element
// events the remote reports under a caller-chosen subscription, the
// most general of the element.* watch verbs.
func (w Window) ElementSubscribe(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, cb func(method string, params json.RawMessage)) (SubscriptionId, error) {
	subID := newSubscriptionId()
	_, err := w.Send(ctx, VerbElementSubscribe, tabID, frameID, struct {
		ElementId      ElementId      `json:"elementId"`
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{elementID, subID})
	if err != nil {
		return SubscriptionId{}, err
	}
	w.inner.conn.Subscribe(subID, cb)
	return subID, nil
}

func (w Window) ElementUnsubscribe(ctx context.Context, subID SubscriptionId) (Result, error) {
	w.inner.conn.Unsubscribe(subID)
	return w.Send(ctx, VerbElementUnsubscribe, 0, MainFrame, struct {
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{subID})
}

// ElementWatchAdded subscribes to element.added notifications for
// elements matching strategy/value within tabID/frameID, decoding the
// generic element.subscribe verb's events into ElementAddedParams
// instead of handing the caller raw JSON (see ElementSubscribe).
func (w Window) ElementWatchAdded(ctx context.Context, tabID TabId, frameID FrameId, strategy, value string, cb func(ElementAddedParams)) (SubscriptionId, error) {
	subID := newSubscriptionId()
	_, err := w.Send(ctx, VerbElementSubscribe, tabID, frameID, struct {
		Strategy       string         `json:"strategy"`
		Value          string         `json:"value"`
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{strategy, value, subID})
	if err != nil {
		return SubscriptionId{}, err
	}
	w.inner.conn.Subscribe(subID, func(method string, raw json.RawMessage) {
		var p ElementAddedParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
	return subID, nil
}

func (w Window) ElementWatchRemoval(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, cb func(ElementRemovedParams)) (SubscriptionId, error) {
	subID := newSubscriptionId()
	res, err := w.Send(ctx, VerbElementWatchRemoval, tabID, frameID, struct {
		ElementId      ElementId      `json:"elementId"`
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{elementID, subID})
	if err != nil {
		return SubscriptionId{}, err
	}
	_ = res
	w.inner.conn.Subscribe(subID, func(method string, raw json.RawMessage) {
		var p ElementRemovedParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
	return subID, nil
}

func (w Window) ElementUnwatchRemoval(ctx context.Context, subID SubscriptionId) (Result, error) {
	w.inner.conn.Unsubscribe(subID)
	return w.Send(ctx, VerbElementUnwatchRemoval, 0, MainFrame, struct {
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{subID})
}

func (w Window) ElementWatchAttribute(ctx context.Context, tabID TabId, frameID FrameId, elementID ElementId, attrName string, cb func(ElementAttributeChangedParams)) (SubscriptionId, error) {
	subID := newSubscriptionId()
	_, err := w.Send(ctx, VerbElementWatchAttr, tabID, frameID, struct {
		ElementId      ElementId      `json:"elementId"`
		AttributeName  string         `json:"attributeName"`
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{elementID, attrName, subID})
	if err != nil {
		return SubscriptionId{}, err
	}
	w.inner.conn.Subscribe(subID, func(method string, raw json.RawMessage) {
		var p ElementAttributeChangedParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
	return subID, nil
}

func (w Window) ElementUnwatchAttribute(ctx context.Context, subID SubscriptionId) (Result, error) {
	w.inner.conn.Unsubscribe(subID)
	return w.Send(ctx, VerbElementUnwatchAttr, 0, MainFrame, struct {
		SubscriptionId SubscriptionId `json:"subscriptionId"`
	}{subID})
}

func (w Window) ScriptEvaluate(ctx context.Context, tabID TabId, frameID FrameId, expression string) (Result, error) {
	return w.Send(ctx, VerbScriptEvaluate, tabID, frameID, struct {
		Expression string `json:"expression"`
	}{expression})
}

func (w Window) ScriptEvaluateAsync(ctx context.Context, tabID TabId, frameID FrameId, expression string) (Result, error) {
	return w.Send(ctx, VerbScriptEvaluateAsync, tabID, frameID, struct {
		Expression string `json:"expression"`
	}{expression})
}

func (w Window) ScriptAddPreloadScript(ctx context.Context, source string) (ScriptId, error) {
	res, err := w.Send(ctx, VerbScriptAddPreloadScript, 0, MainFrame, struct {
		Source string `json:"source"`
	}{source})
	if err != nil {
		return ScriptId{}, err
	}
	var id ScriptId
	err = res.Decode(&struct {
		ScriptId *ScriptId `json:"scriptId"`
	}{&id})
	return id, err
}

func (w Window) ScriptRemovePreloadScript(ctx context.Context, scriptID ScriptId) (Result, error) {
	return w.Send(ctx, VerbScriptRemovePreloadScript, 0, MainFrame, struct {
		ScriptId ScriptId `json:"scriptId"`
	}{scriptID})
}

func (w Window) InputTypeKey(ctx context.Context, tabID TabId, frameID FrameId, key string) (Result, error) {
	return w.Send(ctx, VerbInputTypeKey, tabID, frameID, struct {
		Key string `json:"key"`
	}{key})
}

func (w Window) InputTypeText(ctx context.Context, tabID TabId, frameID FrameId, text string) (Result, error) {
	return w.Send(ctx, VerbInputTypeText, tabID, frameID, struct {
		Text string `json:"text"`
	}{text})
}

func (w Window) InputMouseClick(ctx context.Context, tabID TabId, frameID FrameId, x, y int) (Result, error) {
	return w.Send(ctx, VerbInputMouseClick, tabID, frameID, struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{x, y})
}

func (w Window) InputMouseMove(ctx context.Context, tabID TabId, frameID FrameId, x, y int) (Result, error) {
	return w.Send(ctx, VerbInputMouseMove, tabID, frameID, struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{x, y})
}

func (w Window) InputMouseDown(ctx context.Context, tabID TabId, frameID FrameId, x, y int) (Result, error) {
	return w.Send(ctx, VerbInputMouseDown, tabID, frameID, struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{x, y})
}

func (w Window) InputMouseUp(ctx context.Context, tabID TabId, frameID FrameId, x, y int) (Result, error) {
	return w.Send(ctx, VerbInputMouseUp, tabID, frameID, struct {
		X int `json:"x"`
		Y int `json:"y"`
	}{x, y})
}

// NetworkAddIntercept registers decider locally and tells the remote
// side which URL pattern(s)/phase to intercept under that id.
func (w Window) NetworkAddIntercept(ctx context.Context, urlPattern string, phases []string, decider func(ctx context.Context, method string, params json.RawMessage) InterceptDecision) (InterceptId, error) {
	id := w.AddIntercept(decider)
	_, err := w.Send(ctx, VerbNetworkAddIntercept, 0, MainFrame, struct {
		InterceptId InterceptId `json:"interceptId"`
		URLPattern  string      `json:"urlPattern"`
		Phases      []string    `json:"phases"`
	}{id, urlPattern, phases})
	if err != nil {
		w.RemoveIntercept(id)
		return InterceptId{}, err
	}
	return id, nil
}

func (w Window) NetworkRemoveIntercept(ctx context.Context, interceptID InterceptId) (Result, error) {
	w.RemoveIntercept(interceptID)
	return w.Send(ctx, VerbNetworkRemoveIntercept, 0, MainFrame, struct {
		InterceptId InterceptId `json:"interceptId"`
	}{interceptID})
}

// NetworkWatchRequestBody subscribes to the topic-addressed
// network.requestBody event for tabID — read-only observation, per §9's
// open-question resolution that request bodies (unlike response
// bodies) are never modifiable through an EventReply.
func (w Window) NetworkWatchRequestBody(tabID TabId, cb func(NetworkRequestParams)) TopicSubscriptionId {
	return w.inner.conn.SubscribeTopic(EventNetworkRequestBody, tabID, func(method string, raw json.RawMessage) {
		var p NetworkRequestParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
}

func (w Window) NetworkWatchResponseStarted(tabID TabId, cb func(NetworkResponseParams)) TopicSubscriptionId {
	return w.inner.conn.SubscribeTopic(EventNetworkResponseStarted, tabID, func(method string, raw json.RawMessage) {
		var p NetworkResponseParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
}

func (w Window) NetworkWatchResponseCompleted(tabID TabId, cb func(NetworkResponseParams)) TopicSubscriptionId {
	return w.inner.conn.SubscribeTopic(EventNetworkResponseCompleted, tabID, func(method string, raw json.RawMessage) {
		var p NetworkResponseParams
		if json.Unmarshal(raw, &p) == nil {
			cb(p)
		}
	})
}

// NetworkUnwatch removes a callback registered by any of the
// NetworkWatch* methods above.
func (w Window) NetworkUnwatch(id TopicSubscriptionId) {
	w.inner.conn.UnsubscribeTopic(id)
}

func (w Window) NetworkSetBlockRules(ctx context.Context, patterns []string) (Result, error) {
	return w.Send(ctx, VerbNetworkSetBlockRules, 0, MainFrame, struct {
		Patterns []string `json:"patterns"`
	}{patterns})
}

func (w Window) NetworkClearBlockRules(ctx context.Context) (Result, error) {
	return w.Send(ctx, VerbNetworkClearBlockRules, 0, MainFrame, nil)
}

func (w Window) ProxySetWindowProxy(ctx context.Context, proxyURL string) (Result, error) {
	return w.Send(ctx, VerbProxySetWindowProxy, 0, MainFrame, struct {
		ProxyURL string `json:"proxyUrl"`
	}{proxyURL})
}

func (w Window) ProxyClearWindowProxy(ctx context.Context) (Result, error) {
	return w.Send(ctx, VerbProxyClearWindowProxy, 0, MainFrame, nil)
}

func (w Window) ProxySetTabProxy(ctx context.Context, tabID TabId, proxyURL string) (Result, error) {
	return w.Send(ctx, VerbProxySetTabProxy, tabID, MainFrame, struct {
		ProxyURL string `json:"proxyUrl"`
	}{proxyURL})
}

func (w Window) ProxyClearTabProxy(ctx context.Context, tabID TabId) (Result, error) {
	return w.Send(ctx, VerbProxyClearTabProxy, tabID, MainFrame, nil)
}

func (w Window) StorageGetCookie(ctx context.Context, tabID TabId, name string) (Result, error) {
	return w.Send(ctx, VerbStorageGetCookie, tabID, MainFrame, struct {
		Name string `json:"name"`
	}{name})
}

func (w Window) StorageSetCookie(ctx context.Context, tabID TabId, name, value string) (Result, error) {
	return w.Send(ctx, VerbStorageSetCookie, tabID, MainFrame, struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}{name, value})
}

func (w Window) StorageDeleteCookie(ctx context.Context, tabID TabId, name string) (Result, error) {
	return w.Send(ctx, VerbStorageDeleteCookie, tabID, MainFrame, struct {
		Name string `json:"name"`
	}{name})
}

func (w Window) StorageGetAllCookies(ctx context.Context, tabID TabId) (Result, error) {
	return w.Send(ctx, VerbStorageGetAllCookies, tabID, MainFrame, nil)
}
