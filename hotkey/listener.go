package hotkey

import (
	"log/slog"
	"sync"
	"unicode"

	hook "github.com/robotn/gohook"
)

// Listener owns the global keyboard hook and feeds translated events into
// a Matcher. The hook callback goroutine never blocks on downstream work;
// the matcher's notify handler must hand off promptly (e.g. post to a
// channel).
type Listener struct {
	matcher *Matcher

	mu      sync.Mutex
	running bool
	events  chan hook.Event
}

// NewListener creates a listener driving matcher.
func NewListener(matcher *Matcher) *Listener {
	return &Listener{matcher: matcher}
}

// Start installs the global hook and begins dispatching events.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}

	l.events = hook.Start()
	l.running = true

	go func() {
		for ev := range l.events {
			ke, ok := translate(ev)
			if !ok {
				continue
			}
			l.matcher.Handle(ke)
		}
	}()

	slog.Info("keyboard hook installed")
	return nil
}

// Stop removes the global hook. The dispatch goroutine exits when the
// hook's event channel closes.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	hook.End()
	l.running = false
	slog.Info("keyboard hook removed")
}

// translate maps a raw hook event to a KeyEvent. Unknown key codes are
// dropped; hold (key-repeat) events map to downs, which the matcher
// treats as idempotent.
func translate(ev hook.Event) (KeyEvent, bool) {
	var kind EventKind
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		kind = KeyDown
	case hook.KeyUp:
		kind = KeyUp
	default:
		return KeyEvent{}, false
	}

	modifiers, named := platformTables()
	if mk, ok := modifiers[ev.Rawcode]; ok {
		return KeyEvent{Kind: kind, IsModifier: true, Mod: mk.mod, Side: mk.side}, true
	}
	if name, ok := named[ev.Rawcode]; ok {
		return KeyEvent{Kind: kind, Key: name}, true
	}
	if ch := unicode.ToLower(ev.Keychar); ch > ' ' && ch <= '~' {
		return KeyEvent{Kind: kind, Key: string(ch)}, true
	}
	return KeyEvent{}, false
}
