// Package session orchestrates one push-to-talk cycle: hold starts
// recording, release hands the audio to transcription, the transcript is
// pasted at the input focus, and the machine returns to idle.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/holdspeak/holdspeak/status"
)

// State is the session lifecycle state. Exactly one cycle is in flight
// at a time.
type State uint8

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	}
	return "unknown"
}

// Recorder owns the microphone stream and the per-session buffer.
type Recorder interface {
	Start() error
	Stop() []float32
	Duration() time.Duration
}

// Transcriber converts buffered audio to text. Long-running and fallible.
type Transcriber interface {
	Transcribe(ctx context.Context, samples []float32) (string, error)
}

// Paster delivers text to the current input focus.
type Paster interface {
	PasteText(ctx context.Context, text string) error
}

// Transcript describes one completed dictation, for history and logging.
type Transcript struct {
	Text    string
	Audio   time.Duration
	Latency time.Duration
}

// Deps are the machine's collaborators. Rewrite, OnTranscript and Notify
// are optional.
type Deps struct {
	Recorder    Recorder
	Transcriber Transcriber
	Paster      Paster
	Sink        status.Sink

	// Rewrite is applied to each non-empty transcript before paste.
	Rewrite func(string) string
	// OnTranscript observes each non-empty transcript (history).
	OnTranscript func(Transcript)
	// Notify surfaces user-facing failures outside the status sink.
	Notify func(title, body string)
}

type eventKind uint8

const (
	evHoldStarted eventKind = iota
	evHoldEnded
	evCycleDone
)

type event struct {
	kind eventKind
	err  error
}

// Machine is the session state machine. All transitions happen on the
// single Run goroutine; hold events and worker completions funnel
// through one channel, so state needs no lock against racing writers.
type Machine struct {
	deps   Deps
	events chan event

	mu    sync.Mutex
	state State
}

// NewMachine creates a machine in StateIdle.
func NewMachine(deps Deps) *Machine {
	if deps.Sink == nil {
		deps.Sink = status.Discard{}
	}
	return &Machine{
		deps:   deps,
		events: make(chan event, 16),
	}
}

// HandleHold feeds a hold transition from the hotkey matcher. Safe to
// call from the key-event goroutine; it does not wait for the cycle.
func (m *Machine) HandleHold(held bool) {
	if held {
		m.events <- event{kind: evHoldStarted}
	} else {
		m.events <- event{kind: evHoldEnded}
	}
}

// State returns the current session state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Run consumes events until ctx is canceled. It is the machine's single
// writer; blocking work runs in worker goroutines that report back on
// the event channel.
func (m *Machine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			if m.State() == StateRecording {
				_ = m.deps.Recorder.Stop()
			}
			return
		case ev := <-m.events:
			switch ev.kind {
			case evHoldStarted:
				m.holdStarted()
			case evHoldEnded:
				m.holdEnded(ctx)
			case evCycleDone:
				m.cycleDone(ev.err)
			}
		}
	}
}

func (m *Machine) holdStarted() {
	if m.State() != StateIdle {
		// A cycle is already in flight; its buffer stays with it.
		slog.Debug("ignore hold start", "state", m.State().String())
		return
	}

	if err := m.deps.Recorder.Start(); err != nil {
		slog.Error("start capture", "error", err)
		m.deps.Sink.SetStatus(status.Error)
		m.notify("Microphone unavailable", err.Error())
		return
	}

	m.setState(StateRecording)
	m.deps.Sink.SetStatus(status.Listening)
}

func (m *Machine) holdEnded(ctx context.Context) {
	if m.State() != StateRecording {
		slog.Debug("ignore hold end", "state", m.State().String())
		return
	}

	audio := m.deps.Recorder.Duration()
	samples := m.deps.Recorder.Stop()
	m.setState(StateTranscribing)
	m.deps.Sink.SetStatus(status.Transcribing)

	go m.finishCycle(ctx, samples, audio)
}

// finishCycle runs the blocking transcription call and the clipboard
// protocol off the event goroutine, then reports back.
func (m *Machine) finishCycle(ctx context.Context, samples []float32, audio time.Duration) {
	start := time.Now()
	text, err := m.deps.Transcriber.Transcribe(ctx, samples)
	latency := time.Since(start)

	if err != nil {
		slog.Error("transcribe", "audio", audio, "error", err)
		m.notify("Transcription failed", err.Error())
		m.events <- event{kind: evCycleDone, err: err}
		return
	}
	if text == "" {
		slog.Info("no speech detected", "audio", audio, "latency", latency)
		m.events <- event{kind: evCycleDone}
		return
	}

	if m.deps.Rewrite != nil {
		text = m.deps.Rewrite(text)
	}
	slog.Info("transcribed", "audio", audio, "latency", latency, "chars", len(text))

	if m.deps.OnTranscript != nil {
		m.deps.OnTranscript(Transcript{Text: text, Audio: audio, Latency: latency})
	}

	if perr := m.deps.Paster.PasteText(ctx, text); perr != nil {
		slog.Error("paste transcript", "error", perr)
		m.events <- event{kind: evCycleDone, err: perr}
		return
	}

	m.events <- event{kind: evCycleDone}
}

func (m *Machine) cycleDone(err error) {
	m.setState(StateIdle)
	if err != nil {
		m.deps.Sink.SetStatus(status.Error)
		return
	}
	m.deps.Sink.SetStatus(status.Idle)
}

func (m *Machine) notify(title, body string) {
	if m.deps.Notify != nil {
		m.deps.Notify(title, body)
	}
}
