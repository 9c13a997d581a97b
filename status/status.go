// Package status defines the indicator states emitted by the session
// state machine and the sink that renders them.
package status

// State is the current indicator state.
type State string

const (
	Idle         State = "idle"
	Listening    State = "listening"
	Transcribing State = "transcribing"
	Error        State = "error"
)

// Info holds the descriptive fields shown alongside the state.
type Info struct {
	Microphone string
	Hotkey     string
	Model      string
}

// Sink renders state transitions. Implementations must be safe to call
// from any goroutine.
type Sink interface {
	SetStatus(s State)
}

// Discard is a Sink that drops all updates.
type Discard struct{}

func (Discard) SetStatus(State) {}
