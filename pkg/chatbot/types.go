package chatbot

import (
	"fmt"
	"strings"
)

// Request is the body POSTed to the chatbot endpoint.
type Request struct {
	Message string `json:"message"`
}

// Reply is one decoded chatbot answer.
type Reply struct {
	Response string
	Chart    string // URL, path or data URI; empty means no chart
	Alerts   []string
}

// HasChart reports whether the reply carries a chart reference.
func (r Reply) HasChart() bool {
	return strings.TrimSpace(r.Chart) != ""
}

// wireReply mirrors the JSON body. chart and alerts may be null.
type wireReply struct {
	Response string   `json:"response"`
	Chart    *string  `json:"chart"`
	Alerts   []string `json:"alerts"`
}

func (w wireReply) reply() Reply {
	r := Reply{Response: w.Response}
	if w.Chart != nil {
		r.Chart = *w.Chart
	}
	if len(w.Alerts) > 0 {
		r.Alerts = w.Alerts
	}
	return r
}

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string // truncated preview
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chatbot returned status %s", e.Status)
	}
	return fmt.Sprintf("chatbot returned status %s: %s", e.Status, e.Body)
}
