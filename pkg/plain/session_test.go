package plain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"

	"opschat/pkg/chatbot"
	"opschat/pkg/config"

	"github.com/charmbracelet/x/exp/golden"
)

type scriptedBackend struct {
	mu       sync.Mutex
	replies  map[string]chatbot.Reply
	failures map[string]error
	messages []string
}

func (b *scriptedBackend) SendWithID(_ context.Context, _ string, message string) (chatbot.Reply, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, message)
	if err, ok := b.failures[message]; ok {
		return chatbot.Reply{}, err
	}
	return b.replies[message], nil
}

func (b *scriptedBackend) ResolveChart(src string) string {
	if strings.HasPrefix(src, "/") {
		return "http://localhost:5000" + src
	}
	return src
}

func runSession(t *testing.T, cfg config.Config, backend *scriptedBackend, input string) string {
	t.Helper()
	var out bytes.Buffer
	s, err := NewSession(cfg, backend, &out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if err := s.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return out.String()
}

func TestSession_Golden(t *testing.T) {
	backend := &scriptedBackend{
		replies: map[string]chatbot.Reply{
			"check alerts": {Response: "You have 1 alert", Alerts: []string{"Low stock: bearings"}},
			"Show today's production": {
				Response: "Production today:\nLine 1: 120 units\nLine 2: 95 units",
				Chart:    "/static/prod.png",
				Alerts:   []string{"Low stock: bearings"},
			},
			"Machine status": {Response: "All machines running"},
		},
		failures: map[string]error{
			"Line 3 status": errors.New("connection refused"),
		},
	}
	input := "Show today's production\n/4\n   \n/9\nLine 3 status\n/quit\nnever sent\n"

	out := runSession(t, config.Default(), backend, input)
	golden.RequireEqual(t, out)

	want := []string{"check alerts", "Show today's production", "Machine status", "Line 3 status"}
	if !reflect.DeepEqual(backend.messages, want) {
		t.Errorf("Expected requests %v, got %v", want, backend.messages)
	}
}

func TestSession_InitialLoadOnlyTouchesAlerts(t *testing.T) {
	backend := &scriptedBackend{replies: map[string]chatbot.Reply{
		"check alerts": {Response: "ignored", Chart: "/c.png", Alerts: []string{"a", "b"}},
	}}

	out := runSession(t, config.Default(), backend, "")

	if out != "alert> a\nalert> b\n" {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestSession_InitialLoadFailureIsSilent(t *testing.T) {
	backend := &scriptedBackend{failures: map[string]error{"check alerts": errors.New("down")}}

	if out := runSession(t, config.Default(), backend, ""); out != "" {
		t.Errorf("Expected no output, got %q", out)
	}
}

func TestSession_DisabledLoad(t *testing.T) {
	cfg := config.Default()
	cfg.InitialMessage = ""
	backend := &scriptedBackend{}

	runSession(t, cfg, backend, "")
	if len(backend.messages) != 0 {
		t.Errorf("Expected no requests, got %v", backend.messages)
	}
}

func TestSession_DataURIChart(t *testing.T) {
	backend := &scriptedBackend{replies: map[string]chatbot.Reply{
		"chart": {Response: "here", Chart: "data:,hello"},
	}}
	cfg := config.Default()
	cfg.InitialMessage = ""

	out := runSession(t, cfg, backend, "chart\n")
	want := "you> chart\nbot> here\nchart> inline text/plain (5 B)\nalerts> (none)\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestSession_Help(t *testing.T) {
	cfg := config.Default()
	cfg.InitialMessage = ""
	cfg.QuickActions = []string{"Machine status", "Help"}

	out := runSession(t, cfg, &scriptedBackend{}, "/help\n")
	want := "quick> /1 Machine status\nquick> /2 Help\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
}

func TestSession_SlashTextIsSent(t *testing.T) {
	cfg := config.Default()
	cfg.InitialMessage = ""
	backend := &scriptedBackend{replies: map[string]chatbot.Reply{}}

	runSession(t, cfg, backend, "/etc/hosts\n")
	if !reflect.DeepEqual(backend.messages, []string{"/etc/hosts"}) {
		t.Errorf("Expected slash text to be sent as a message, got %v", backend.messages)
	}
}

func TestSession_CanceledContext(t *testing.T) {
	cfg := config.Default()
	cfg.InitialMessage = ""
	backend := &scriptedBackend{}
	s, err := NewSession(cfg, backend, io.Discard, nil)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, strings.NewReader("hello\n")); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(backend.messages) != 0 {
		t.Errorf("Expected no requests, got %v", backend.messages)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestSession_WriteError(t *testing.T) {
	cfg := config.Default()
	cfg.InitialMessage = ""
	backend := &scriptedBackend{replies: map[string]chatbot.Reply{"hi": {Response: "ok"}}}
	s, err := NewSession(cfg, backend, failingWriter{}, nil)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	if err := s.Run(context.Background(), strings.NewReader("hi\nagain\n")); err == nil {
		t.Error("Expected write error")
	}
	if len(backend.messages) != 1 {
		t.Errorf("Expected the session to stop after the failed write, got %v", backend.messages)
	}
}

func TestNewSession_Validation(t *testing.T) {
	if _, err := NewSession(config.Default(), nil, io.Discard, nil); err == nil {
		t.Error("Expected error for nil backend")
	}
	if _, err := NewSession(config.Default(), &scriptedBackend{}, nil, nil); err == nil {
		t.Error("Expected error for nil output")
	}
}

func TestSession_StripsControlSequences(t *testing.T) {
	backend := &scriptedBackend{
		replies: map[string]chatbot.Reply{
			"status": {
				Response: "ok\x1b[2J\u009b31m done",
				Chart:    "/c.png\x1b]52;c;eA==\x07",
				Alerts:   []string{"hot\x1b[5m spindle"},
			},
		},
	}
	cfg := config.Default()
	cfg.InitialMessage = ""

	out := runSession(t, cfg, backend, "status\n")

	for _, seq := range []string{"\x1b", "\x07", "\u009b"} {
		if strings.Contains(out, seq) {
			t.Errorf("Expected %q to be stripped, got %q", seq, out)
		}
	}
	for _, line := range []string{"bot> ok[2J31m done", "chart> http://localhost:5000/c.png]52;c;eA==", "alert> hot[5m spindle"} {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("Expected line %q in output %q", line, out)
		}
	}
}
