package widget

import (
	"context"
	"errors"

	"opschat/pkg/chatbot"
)

// Transcript receives turns in order.
type Transcript interface {
	AppendTurn(turn Turn)
}

// Input is the text field the user types into.
type Input interface {
	Value() string
	SetValue(s string)
}

// ChartPanel shows at most one chart reference.
type ChartPanel interface {
	ShowChart(src string)
	ClearChart()
}

// AlertPanel shows the latest alert list. An empty list clears it.
type AlertPanel interface {
	SetAlerts(alerts []string)
}

// Regions are the UI surfaces the widget owns.
type Regions struct {
	Transcript Transcript
	Input      Input
	Chart      ChartPanel
	Alerts     AlertPanel
}

func (r Regions) validate() error {
	var errs []error
	if r.Transcript == nil {
		errs = append(errs, errors.New("transcript region is nil"))
	}
	if r.Input == nil {
		errs = append(errs, errors.New("input region is nil"))
	}
	if r.Chart == nil {
		errs = append(errs, errors.New("chart region is nil"))
	}
	if r.Alerts == nil {
		errs = append(errs, errors.New("alerts region is nil"))
	}
	return errors.Join(errs...)
}

// Sender performs one chatbot round trip. *chatbot.Client implements it.
type Sender interface {
	SendWithID(ctx context.Context, id, message string) (chatbot.Reply, error)
}
