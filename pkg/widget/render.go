package widget

// State is a snapshot of everything the widget displays.
type State struct {
	Transcript []Turn
	Chart      string
	Alerts     []string

	// Bumped whenever a reply replaces the panel, even with identical content.
	ChartRevision  uint64
	AlertsRevision uint64
}

func (s State) clone() State {
	out := s
	out.Transcript = append([]Turn(nil), s.Transcript...)
	out.Alerts = append([]string(nil), s.Alerts...)
	return out
}

// OpKind names a region operation.
type OpKind int

const (
	OpAppendTurn OpKind = iota
	OpShowChart
	OpClearChart
	OpReplaceAlerts
)

func (k OpKind) String() string {
	switch k {
	case OpAppendTurn:
		return "append_turn"
	case OpShowChart:
		return "show_chart"
	case OpClearChart:
		return "clear_chart"
	case OpReplaceAlerts:
		return "replace_alerts"
	default:
		return "unknown"
	}
}

// Op is one change to apply to the regions.
type Op struct {
	Kind   OpKind
	Turn   Turn
	Chart  string
	Alerts []string
}

// Apply performs the op on the given regions.
func (op Op) Apply(r Regions) {
	switch op.Kind {
	case OpAppendTurn:
		r.Transcript.AppendTurn(op.Turn)
	case OpShowChart:
		r.Chart.ShowChart(op.Chart)
	case OpClearChart:
		r.Chart.ClearChart()
	case OpReplaceAlerts:
		r.Alerts.SetAlerts(op.Alerts)
	}
}

// Render returns the ops that take the regions from prev to next. It has no
// side effects. Turns are only ever appended, so the transcript diff is the
// suffix of next beyond len(prev.Transcript).
func Render(prev, next State) []Op {
	var ops []Op

	start := len(prev.Transcript)
	if start > len(next.Transcript) {
		start = len(next.Transcript)
	}
	for _, turn := range next.Transcript[start:] {
		ops = append(ops, Op{Kind: OpAppendTurn, Turn: turn})
	}

	if next.ChartRevision != prev.ChartRevision {
		if next.Chart != "" {
			ops = append(ops, Op{Kind: OpShowChart, Chart: next.Chart})
		} else {
			ops = append(ops, Op{Kind: OpClearChart})
		}
	}

	if next.AlertsRevision != prev.AlertsRevision {
		ops = append(ops, Op{Kind: OpReplaceAlerts, Alerts: append([]string(nil), next.Alerts...)})
	}

	return ops
}
