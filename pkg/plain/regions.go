package plain

import (
	"fmt"
	"io"
	"strings"

	"opschat/pkg/chatbot"
	"opschat/pkg/ui/components/chart"
	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/widget"
)

const continuationIndent = "     "

// printer writes every region change as prefixed lines. It implements the
// transcript, chart and alert regions.
type printer struct {
	out     io.Writer
	resolve func(string) string
	err     error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, format, args...)
}

func (p *printer) AppendTurn(turn widget.Turn) {
	prefix := "bot> "
	if turn.Speaker == widget.SpeakerUser {
		prefix = "you> "
	}
	text := strings.TrimRight(textutil.Sanitize(turn.Text), "\n")
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			p.printf("%s%s\n", prefix, line)
			continue
		}
		p.printf("%s%s\n", continuationIndent, line)
	}
}

func (p *printer) ShowChart(src string) {
	src = textutil.Sanitize(src)
	if chatbot.IsDataURI(src) {
		p.printf("chart> %s\n", chart.Describe(src))
		return
	}
	if resolved := p.resolve(src); resolved != "" {
		p.printf("chart> %s\n", resolved)
		return
	}
	p.printf("chart> %s\n", src)
}

func (p *printer) ClearChart() {
	p.printf("chart> (none)\n")
}

func (p *printer) SetAlerts(alerts []string) {
	if len(alerts) == 0 {
		p.printf("alerts> (none)\n")
		return
	}
	for _, alert := range alerts {
		p.printf("alert> %s\n", strings.Join(strings.Fields(textutil.Sanitize(alert)), " "))
	}
}

// lineInput is the input region: the line most recently read.
type lineInput struct {
	value string
}

func (l *lineInput) Value() string { return l.value }

func (l *lineInput) SetValue(v string) { l.value = v }
