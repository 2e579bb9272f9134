// Package plain is the line-mode front end used when stdin is not a
// terminal. Each input line is one message; "/N" runs quick action N.
package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"opschat/pkg/config"
	"opschat/pkg/widget"
)

const maxLineBytes = 1 << 20

// Backend sends messages and resolves chart references.
type Backend interface {
	widget.Sender
	ResolveChart(src string) string
}

// Session runs the widget over line-based input and output.
type Session struct {
	widget  *widget.Widget
	printer *printer
	input   *lineInput
	presets []string
	logger  *slog.Logger
}

// NewSession builds a session writing to out.
func NewSession(cfg config.Config, backend Backend, out io.Writer, logger *slog.Logger) (*Session, error) {
	if backend == nil {
		return nil, errors.New("backend is nil")
	}
	if out == nil {
		return nil, errors.New("output is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &printer{out: out, resolve: backend.ResolveChart}
	in := &lineInput{}
	w, err := widget.New(widget.Regions{
		Transcript: p,
		Input:      in,
		Chart:      p,
		Alerts:     p,
	}, backend,
		widget.WithLogger(logger),
		widget.WithInitialMessage(cfg.InitialMessage),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create widget: %w", err)
	}

	return &Session{
		widget:  w,
		printer: p,
		input:   in,
		presets: append([]string(nil), cfg.QuickActions...),
		logger:  logger,
	}, nil
}

// Run sends the initial alerts request, then handles lines from in until
// EOF, "/quit" or ctx is done. Calls are synchronous.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if req, ok := s.widget.Load(); ok {
		s.widget.Deliver(s.widget.Call(ctx, req))
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.handleLine(ctx, scanner.Text()) {
			break
		}
		if s.printer.err != nil {
			return fmt.Errorf("failed to write output: %w", s.printer.err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if s.printer.err != nil {
		return fmt.Errorf("failed to write output: %w", s.printer.err)
	}
	return nil
}

// handleLine returns false when the session should end.
func (s *Session) handleLine(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "/quit":
		return false
	case trimmed == "/help" || trimmed == "/":
		for i, preset := range s.presets {
			s.printer.printf("quick> /%d %s\n", i+1, preset)
		}
		return true
	case strings.HasPrefix(trimmed, "/"):
		if n, err := strconv.Atoi(trimmed[1:]); err == nil {
			if n < 1 || n > len(s.presets) {
				s.printer.printf("quick> no quick action %d\n", n)
				return true
			}
			s.send(ctx, func() (widget.Request, bool) { return s.widget.QuickAction(s.presets[n-1]) })
			return true
		}
	}

	s.input.SetValue(line)
	s.send(ctx, s.widget.Submit)
	return true
}

func (s *Session) send(ctx context.Context, next func() (widget.Request, bool)) {
	req, ok := next()
	if !ok {
		return
	}
	s.widget.Deliver(s.widget.Call(ctx, req))
}
