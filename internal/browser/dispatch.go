package browser

import (
	"context"
	"encoding/json"
	"time"

	"github.com/flintwood/foxdrift/internal/logx"
)

func unmarshalProbe(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// dispatchResponse implements §4.5's response path: remove the pending
// entry keyed by id and fulfil it. A response whose id is absent is
// silently discarded — it went stale after a timeout already removed
// the slot.
func dispatchResponse(c *Connection, resp *response) {
	c.pendingMu.Lock()
	slot, ok := c.pending[resp.ID]
	if ok {
		delete(c.pending, resp.ID)
	}
	c.pendingMu.Unlock()

	if !ok {
		return
	}
	select {
	case slot.ch <- *resp:
	default:
	}
}

// dispatchEvent implements §4.5's event path. Plain events are handed
// to their subscriber on a worker goroutine so a slow callback cannot
// stall the reader loop; reply-requiring events are run on a worker
// with a bounded deadline and always produce exactly one EventReply,
// falling back to "allow" if no decider is registered or it times out.
func dispatchEvent(c *Connection, event *wireEvent) {
	if isReplyRequiring(event.Method) {
		go dispatchInterceptEvent(c, event)
		return
	}
	go dispatchPlainEvent(c, event)
}

func dispatchPlainEvent(c *Connection, event *wireEvent) {
	if subID, ok := subscriptionIDFromParams(event.Params); ok {
		c.subsMu.Lock()
		cb, ok := c.subs[subID]
		c.subsMu.Unlock()
		if ok {
			cb(event.Method, event.Params)
		}
		return
	}

	// browsingContext.load et al., and network.requestBody/responseStarted/
	// responseCompleted, carry no subscriptionId; they are topic-addressed
	// (per §9's open-question resolution) and broadcast to every callback
	// registered for this (method, tabId) pair via SubscribeTopic.
	tabID, ok := topicTabIDFromParams(event.Params)
	if !ok {
		return
	}
	for _, cb := range c.topicCallbacks(topicKey{method: event.Method, tabID: tabID}) {
		cb(event.Method, event.Params)
	}
}

func dispatchInterceptEvent(c *Connection, event *wireEvent) {
	interceptID, ok := interceptIDFromParams(event.Params)
	decision := AllowDecision()

	if ok {
		c.interceptMu.Lock()
		decider, found := c.intercepts[interceptID]
		c.interceptMu.Unlock()

		if found {
			decision = runDeciderWithDeadline(c, decider, event)
		}
	}

	reply, err := encodeEventReply(eventReplyFrame{ID: event.ID, ReplyTo: event.Method, Result: decision})
	if err != nil {
		logx.Errorf("connection %d: failed to encode event reply for %s: %v", c.sessionID, event.Method, err)
		return
	}

	select {
	case c.send <- reply:
	case <-c.closed:
	}
}

func runDeciderWithDeadline(c *Connection, decider interceptDecider, event *wireEvent) InterceptDecision {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.EventReplyTimeout)
	defer cancel()

	result := make(chan InterceptDecision, 1)
	go func() {
		result <- decider(ctx, event.Method, event.Params)
	}()

	select {
	case decision := <-result:
		return decision
	case <-time.After(c.cfg.EventReplyTimeout):
		logx.Warnf("connection %d: intercept decider for %s exceeded %s, defaulting to allow", c.sessionID, event.Method, c.cfg.EventReplyTimeout)
		return AllowDecision()
	}
}

// subscriptionIDFromParams and interceptIDFromParams peek the one field
// they each care about out of an event's raw params without decoding
// the full (event-specific) parameter shape.
func subscriptionIDFromParams(raw []byte) (SubscriptionId, bool) {
	var probe struct {
		SubscriptionId *SubscriptionId `json:"subscriptionId"`
	}
	if err := unmarshalProbe(raw, &probe); err != nil || probe.SubscriptionId == nil {
		return SubscriptionId{}, false
	}
	return *probe.SubscriptionId, true
}

func interceptIDFromParams(raw []byte) (InterceptId, bool) {
	var probe struct {
		InterceptId *InterceptId `json:"interceptId"`
	}
	if err := unmarshalProbe(raw, &probe); err != nil || probe.InterceptId == nil {
		return InterceptId{}, false
	}
	return *probe.InterceptId, true
}

// topicTabIDFromParams peeks the tabId field every topic-addressed
// event's params carries (NavigationParams, NetworkRequestParams,
// NetworkResponseParams all have one), without decoding the rest of the
// event-specific shape.
func topicTabIDFromParams(raw []byte) (TabId, bool) {
	var probe struct {
		TabId *TabId `json:"tabId"`
	}
	if err := unmarshalProbe(raw, &probe); err != nil || probe.TabId == nil {
		return 0, false
	}
	return *probe.TabId, true
}
