package hotkey

// EventKind is a key transition direction.
type EventKind uint8

const (
	KeyDown EventKind = iota
	KeyUp
)

// KeyEvent is one raw key transition, already translated from the OS hook.
// Modifier events carry Mod and a concrete Side; other keys carry the
// normalized Key name.
type KeyEvent struct {
	Kind       EventKind
	IsModifier bool
	Mod        Mod
	Side       Side
	Key        string
}

// HoldHandler receives hold transitions. held is true exactly once per
// hold interval, then false once when the hold ends.
type HoldHandler func(held bool)

// physKey identifies one physical key for state tracking: modifiers by
// (mod, side), everything else by name.
type physKey struct {
	isMod bool
	mod   Mod
	side  Side
	key   string
}

// Matcher tracks which keys are currently down and reports the exact
// transitions into and out of "all combo keys held". It is driven from a
// single goroutine (the OS key event stream) and needs no locking.
type Matcher struct {
	combo  Combo
	down   map[physKey]bool
	held   bool
	notify HoldHandler
}

// NewMatcher creates a matcher for combo that reports transitions to notify.
func NewMatcher(combo Combo, notify HoldHandler) *Matcher {
	return &Matcher{
		combo:  combo,
		down:   make(map[physKey]bool),
		notify: notify,
	}
}

// Handle consumes one key event. Key-repeat downs for an already-down key
// are idempotent; releasing any required key ends an active hold.
func (m *Matcher) Handle(ev KeyEvent) {
	k := physKeyOf(ev)
	switch ev.Kind {
	case KeyDown:
		m.down[k] = true
	case KeyUp:
		delete(m.down, k)
	}

	satisfied := m.satisfied()
	switch {
	case satisfied && !m.held:
		m.held = true
		m.notify(true)
	case !satisfied && m.held:
		m.held = false
		m.notify(false)
	}
}

// Held reports whether the combo is currently held.
func (m *Matcher) Held() bool {
	return m.held
}

func (m *Matcher) satisfied() bool {
	for _, req := range m.combo.Mods {
		if !m.modDown(req) {
			return false
		}
	}
	if m.combo.Key != "" {
		if !m.down[physKey{key: m.combo.Key}] {
			return false
		}
	}
	return true
}

func (m *Matcher) modDown(req ModReq) bool {
	if req.Side == SideAny {
		return m.down[physKey{isMod: true, mod: req.Mod, side: SideLeft}] ||
			m.down[physKey{isMod: true, mod: req.Mod, side: SideRight}]
	}
	return m.down[physKey{isMod: true, mod: req.Mod, side: req.Side}]
}

func physKeyOf(ev KeyEvent) physKey {
	if ev.IsModifier {
		side := ev.Side
		if side == SideAny {
			// Hooks that cannot tell sides apart report left.
			side = SideLeft
		}
		return physKey{isMod: true, mod: ev.Mod, side: side}
	}
	return physKey{key: ev.Key}
}
