package widget

import (
	"context"
	"time"

	"opschat/pkg/chatbot"
)

// Kind says how a result is applied.
type Kind int

const (
	// KindChat results add a bot turn and replace both panels.
	KindChat Kind = iota
	// KindAlertsOnly results only replace the alert panel.
	KindAlertsOnly
)

func (k Kind) String() string {
	if k == KindAlertsOnly {
		return "alerts_only"
	}
	return "chat"
}

// Request is one message waiting to be sent.
type Request struct {
	ID      string
	Message string
	Kind    Kind
}

// Result is the outcome of a Request: a reply or an error.
type Result struct {
	Request Request
	Reply   chatbot.Reply
	Err     error
}

// Call sends req and blocks until the reply or an error arrives.
func (w *Widget) Call(ctx context.Context, req Request) Result {
	start := time.Now()
	reply, err := w.sender.SendWithID(ctx, req.ID, req.Message)
	w.logger.Debug("widget_call_done",
		"request_id", req.ID,
		"kind", req.Kind.String(),
		"ok", err == nil,
		"duration_ms", time.Since(start).Milliseconds())
	return Result{Request: req, Reply: reply, Err: err}
}

// Go runs Call in a new goroutine. The channel yields one Result and is
// then closed.
func (w *Widget) Go(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- w.Call(ctx, req)
	}()
	return ch
}

// Deliver applies a finished Result.
func (w *Widget) Deliver(res Result) {
	if w.pending > 0 {
		w.pending--
	}

	switch res.Request.Kind {
	case KindAlertsOnly:
		if res.Err != nil {
			w.logger.Warn("widget_alerts_load_failed", "request_id", res.Request.ID, "error", res.Err)
			return
		}
		w.replaceAlerts(res.Reply.Alerts)
	default:
		if res.Err != nil {
			w.transportFailure(w.logger.With("request_id", res.Request.ID), res.Err)
			return
		}
		w.OnReply(res.Reply)
	}
}
