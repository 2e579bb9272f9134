// Package widget holds the chat widget: the transcript, the chart and alert
// panels, and the request/reply flow that feeds them. It knows nothing about
// terminals; front ends inject the four UI regions it writes to.
package widget

// ApologyText is shown in place of a reply when the request fails.
const ApologyText = "Sorry, there was an error processing your request."

// DefaultInitialMessage is sent once on load to populate the alert panel.
const DefaultInitialMessage = "check alerts"

// Speaker identifies who produced a turn.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerBot
)

func (s Speaker) String() string {
	switch s {
	case SpeakerUser:
		return "user"
	case SpeakerBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Turn is one entry of the transcript. Turns are never edited once appended.
type Turn struct {
	Speaker Speaker
	Text    string
}
