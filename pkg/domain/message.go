package domain

import "fmt"

// MessageKind separates guard/status text from the description of the latest action.
type MessageKind string

const (
	MessageStatus MessageKind = "status"
	MessageAction MessageKind = "action"
	MessageError  MessageKind = "error"
)

// Message is a short user-facing text emitted by playback.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

func (m Message) String() string {
	return m.Text
}

// Status texts reported by guarded no-ops and boundaries.
const (
	TextSubmitFirst     = "submit a solution first"
	TextNoStepsRequired = "no steps required"
	TextAllCompleted    = "all steps completed"
	TextNoPreviousStep  = "there is no step before this one"
	TextInternalError   = "internal error: playback halted"
)

// StatusMessage builds a status message.
func StatusMessage(text string) Message {
	return Message{Kind: MessageStatus, Text: text}
}

// SwappedMessage describes a swap step.
func SwappedMessage(a, b Label) Message {
	return Message{Kind: MessageAction, Text: fmt.Sprintf("swapped (%s, %s)", a, b)}
}

// AllowedMessage describes a reached desired interaction.
func AllowedMessage(d DesiredInteraction) Message {
	return Message{Kind: MessageAction, Text: fmt.Sprintf("allowed interaction %s->%s", d.Source, d.Target)}
}
