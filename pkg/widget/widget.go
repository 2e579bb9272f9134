package widget

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"opschat/pkg/chatbot"

	"github.com/google/uuid"
)

// Widget drives the four regions from user input and chatbot replies.
//
// All methods except Call and Go must be called from a single goroutine (the
// UI loop). Call and Go only touch the sender, so they can run elsewhere.
// Concurrent requests are not sequenced: whichever result is delivered last
// decides what the chart and alert panels show.
type Widget struct {
	regions        Regions
	sender         Sender
	logger         *slog.Logger
	newID          func() string
	initialMessage string

	state   State
	pending int
}

// Option customizes a Widget.
type Option func(*Widget)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithIDGenerator replaces the request ID source.
func WithIDGenerator(fn func() string) Option {
	return func(w *Widget) {
		if fn != nil {
			w.newID = fn
		}
	}
}

// WithInitialMessage changes the message sent by Load.
func WithInitialMessage(message string) Option {
	return func(w *Widget) {
		w.initialMessage = message
	}
}

// New builds a widget over the given regions. Every region and the sender
// must be non-nil.
func New(regions Regions, sender Sender, opts ...Option) (*Widget, error) {
	if err := regions.validate(); err != nil {
		return nil, fmt.Errorf("invalid regions: %w", err)
	}
	if sender == nil {
		return nil, errors.New("sender is nil")
	}

	w := &Widget{
		regions:        regions,
		sender:         sender,
		logger:         slog.Default(),
		newID:          uuid.NewString,
		initialMessage: DefaultInitialMessage,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Submit reads the input region. Blank input is ignored. Otherwise the
// trimmed text is appended as a user turn, the input is cleared and the
// request to send is returned.
func (w *Widget) Submit() (Request, bool) {
	text := strings.TrimSpace(w.regions.Input.Value())
	if text == "" {
		return Request{}, false
	}

	next := w.state
	next.Transcript = append(next.Transcript, Turn{Speaker: SpeakerUser, Text: text})
	w.commit(next)
	w.regions.Input.SetValue("")

	req := w.newRequest(text, KindChat)
	w.logger.Info("widget_submit", "request_id", req.ID, "message_length", len(text), "pending", w.pending)
	return req, true
}

// QuickAction places preset in the input and submits it.
func (w *Widget) QuickAction(preset string) (Request, bool) {
	w.regions.Input.SetValue(preset)
	return w.Submit()
}

// Load returns the startup request that fills the alert panel. Its response
// text and chart are ignored and no turn is added. ok is false when the
// initial message is disabled.
func (w *Widget) Load() (Request, bool) {
	message := strings.TrimSpace(w.initialMessage)
	if message == "" {
		return Request{}, false
	}
	req := w.newRequest(message, KindAlertsOnly)
	w.logger.Debug("widget_load", "request_id", req.ID)
	return req, true
}

// OnReply appends the bot turn and replaces both panels.
func (w *Widget) OnReply(reply chatbot.Reply) {
	next := w.state
	next.Transcript = append(next.Transcript, Turn{Speaker: SpeakerBot, Text: reply.Response})
	if reply.HasChart() {
		next.Chart = strings.TrimSpace(reply.Chart)
	} else {
		next.Chart = ""
	}
	next.ChartRevision++
	next.Alerts = append([]string(nil), reply.Alerts...)
	next.AlertsRevision++
	w.commit(next)
}

// OnTransportFailure appends the apology turn. Panels keep their content.
func (w *Widget) OnTransportFailure(err error) {
	w.transportFailure(w.logger, err)
}

func (w *Widget) transportFailure(logger *slog.Logger, err error) {
	logger.Error("widget_transport_failure", "error", err)
	next := w.state
	next.Transcript = append(next.Transcript, Turn{Speaker: SpeakerBot, Text: ApologyText})
	w.commit(next)
}

func (w *Widget) replaceAlerts(alerts []string) {
	next := w.state
	next.Alerts = append([]string(nil), alerts...)
	next.AlertsRevision++
	w.commit(next)
}

// State returns a copy of what the widget currently displays.
func (w *Widget) State() State {
	return w.state.clone()
}

// Pending returns the number of requests handed out and not yet delivered.
func (w *Widget) Pending() int {
	return w.pending
}

// LastBotText returns the most recent bot turn, or "" if there is none.
func (w *Widget) LastBotText() string {
	for i := len(w.state.Transcript) - 1; i >= 0; i-- {
		if w.state.Transcript[i].Speaker == SpeakerBot {
			return w.state.Transcript[i].Text
		}
	}
	return ""
}

func (w *Widget) newRequest(message string, kind Kind) Request {
	w.pending++
	return Request{ID: w.newID(), Message: message, Kind: kind}
}

func (w *Widget) commit(next State) {
	for _, op := range Render(w.state, next) {
		op.Apply(w.regions)
	}
	w.state = next
}
