// Package ui is the terminal front end: a bubbletea program that hosts the
// chat widget and its four regions.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"opschat/pkg/config"
	"opschat/pkg/ui/components/alerts"
	"opschat/pkg/ui/components/chart"
	"opschat/pkg/ui/components/input"
	"opschat/pkg/ui/components/quickbar"
	"opschat/pkg/ui/components/statusbar"
	"opschat/pkg/ui/components/textutil"
	"opschat/pkg/ui/components/transcript"
	"opschat/pkg/ui/styles"
	"opschat/pkg/widget"

	tea "charm.land/bubbletea/v2"
)

const headerHelp = "enter send | F1-F9 quick actions | ctrl+y copy | ctrl+s save chart | esc quit"

// Backend sends messages and knows where charts live.
type Backend interface {
	widget.Sender
	ChatURL() string
	ResolveChart(src string) string
}

// replyMsg carries a finished request back to the UI goroutine.
type replyMsg struct {
	res widget.Result
}

// Model is the bubbletea model.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	widget     *widget.Widget
	transcript *transcript.Transcript
	input      *input.Input
	chart      *chart.Panel
	alerts     *alerts.Panel
	quickbar   *quickbar.Bar
	statusBar  *statusbar.StatusBarView
	layout     *LayoutManager

	chartDir  string
	clipboard io.Writer

	initWidth  int
	initHeight int
}

// Option customizes a Model.
type Option func(*Model)

// WithContext sets the context passed to outgoing requests.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// WithLogger sets the logger shared with the widget.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClipboard sets where OSC 52 copy sequences are written.
func WithClipboard(w io.Writer) Option {
	return func(m *Model) {
		if w != nil {
			m.clipboard = w
		}
	}
}

// WithSize sets the window size used until the first resize event.
func WithSize(width, height int) Option {
	return func(m *Model) {
		if width > 0 && height > 0 {
			m.initWidth, m.initHeight = width, height
		}
	}
}

// NewModel builds the UI and its widget.
func NewModel(cfg config.Config, backend Backend, version string, opts ...Option) (Model, error) {
	if backend == nil {
		return Model{}, errors.New("backend is nil")
	}

	m := Model{
		ctx:        context.Background(),
		logger:     slog.Default(),
		transcript: transcript.New(),
		input:      input.New(cfg.QuickActions),
		chart:      chart.New(backend.ResolveChart),
		alerts:     alerts.New(),
		quickbar:   quickbar.New(cfg.QuickActions),
		statusBar:  statusbar.NewStatusBarView(backend.ChatURL(), version),
		chartDir:   cfg.ChartDirOrDefault(),
		clipboard:  os.Stdout,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.layout = NewLayoutManager(len(m.quickbar.Presets()) > 0)
	if m.initWidth > 0 {
		m.layout.SetSize(m.initWidth, m.initHeight)
	}
	m.statusBar.SetTheme(cfg.StatusBar.Theme)

	w, err := widget.New(widget.Regions{
		Transcript: m.transcript,
		Input:      m.input,
		Chart:      m.chart,
		Alerts:     m.alerts,
	}, backend,
		widget.WithLogger(m.logger),
		widget.WithInitialMessage(cfg.InitialMessage),
	)
	if err != nil {
		return Model{}, fmt.Errorf("failed to create widget: %w", err)
	}
	m.widget = w
	m.resize()
	return m, nil
}

// Init focuses the input and sends the initial alerts request.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), m.load())
}

// load issues the startup request; nil when it is disabled.
func (m Model) load() tea.Cmd {
	req, ok := m.widget.Load()
	if !ok {
		return nil
	}
	m.statusBar.SetPending(m.widget.Pending())
	return m.send(req)
}

// Update handles window, key and reply messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case replyMsg:
		m.widget.Deliver(msg.res)
		m.statusBar.SetPending(m.widget.Pending())
		if msg.res.Err != nil {
			if msg.res.Request.Kind == widget.KindAlertsOnly {
				m.statusBar.SetMessage("Alert refresh failed")
			} else {
				m.statusBar.SetMessage("Request failed")
			}
		}
		return m, nil

	case transcript.CopiedMsg:
		m.statusBar.SetMessage(fmt.Sprintf("Copied %d characters", msg.Length))
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, m.input.Update(msg)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage("")
	key := msg.String()

	switch key {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		req, ok := m.widget.Submit()
		if !ok {
			return m, nil
		}
		m.statusBar.SetPending(m.widget.Pending())
		return m, m.send(req)

	case "ctrl+y":
		text := m.widget.LastBotText()
		if text == "" {
			m.statusBar.SetMessage("Nothing to copy")
			return m, nil
		}
		return m, transcript.CopyToClipboard(m.clipboard, text)

	case "ctrl+s":
		m.saveChart()
		return m, nil
	}

	if preset, ok := m.quickbar.Lookup(key); ok {
		req, ok := m.widget.QuickAction(preset)
		if !ok {
			return m, nil
		}
		m.statusBar.SetPending(m.widget.Pending())
		return m, m.send(req)
	}

	if m.transcript.HandleKey(key) {
		return m, nil
	}

	return m, m.input.Update(msg)
}

func (m Model) saveChart() {
	path, err := m.chart.Save(m.chartDir)
	switch {
	case errors.Is(err, chart.ErrNoInlineChart):
		m.statusBar.SetMessage("No inline chart to save")
	case err != nil:
		m.logger.Error("chart_save_failed", "error", err)
		m.statusBar.SetMessage("Chart save failed")
	default:
		m.logger.Info("chart_saved", "path", path)
		m.statusBar.SetMessage("Chart saved to " + path)
	}
}

// send runs the request off the UI goroutine.
func (m Model) send(req widget.Request) tea.Cmd {
	w := m.widget
	ctx := m.ctx
	return func() tea.Msg {
		return replyMsg{res: w.Call(ctx, req)}
	}
}

func (m Model) resize() {
	width, _ := m.layout.GetDimensions()
	mainHeight := m.layout.MainHeight()

	m.transcript.SetSize(m.layout.TranscriptWidth(), mainHeight)
	m.chart.SetSize(m.layout.SideWidth(), m.layout.ChartHeight())
	m.alerts.SetSize(m.layout.SideWidth(), m.layout.AlertsHeight())
	m.quickbar.SetWidth(width)
	m.input.SetWidth(width)
	m.statusBar.SetWidth(width)
}

func (m Model) header() string {
	width, _ := m.layout.GetDimensions()
	title := styles.TitleStyle.Render("opschat")
	rest := width - 9
	if rest < 1 {
		return textutil.PadStyled(title, width)
	}
	return textutil.PadStyled(title+"  "+styles.FooterStyle.Render(textutil.TruncateToWidth(headerHelp, rest)), width)
}

// View renders the UI (Bubble Tea lifecycle method)
func (m Model) View() tea.View {
	content := m.layout.RenderLayout(
		m.header(),
		m.transcript.View(),
		m.chart.View(),
		m.alerts.View(),
		m.quickbar.View(),
		m.input.View(),
		m.statusBar.Render(),
	)
	v := tea.NewView(content)
	v.AltScreen = true
	v.WindowTitle = "opschat"
	return v
}
