package hotkey

import (
	"testing"
)

// holdRecorder collects hold transitions in order.
type holdRecorder struct {
	transitions []bool
}

func (r *holdRecorder) handle(held bool) {
	r.transitions = append(r.transitions, held)
}

func modDownEv(mod Mod, side Side) KeyEvent {
	return KeyEvent{Kind: KeyDown, IsModifier: true, Mod: mod, Side: side}
}

func modUpEv(mod Mod, side Side) KeyEvent {
	return KeyEvent{Kind: KeyUp, IsModifier: true, Mod: mod, Side: side}
}

func keyDownEv(key string) KeyEvent {
	return KeyEvent{Kind: KeyDown, Key: key}
}

func keyUpEv(key string) KeyEvent {
	return KeyEvent{Kind: KeyUp, Key: key}
}

func TestMatcher_Handle(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		events []KeyEvent
		want   []bool
	}{
		{
			name: "single modifier press and release",
			spec: "cmd_r",
			events: []KeyEvent{
				modDownEv(ModCmd, SideRight),
				modUpEv(ModCmd, SideRight),
			},
			want: []bool{true, false},
		},
		{
			name: "wrong side never triggers",
			spec: "cmd_r",
			events: []KeyEvent{
				modDownEv(ModCmd, SideLeft),
				modUpEv(ModCmd, SideLeft),
			},
			want: nil,
		},
		{
			name: "side-agnostic accepts either side",
			spec: "cmd",
			events: []KeyEvent{
				modDownEv(ModCmd, SideRight),
				modUpEv(ModCmd, SideRight),
				modDownEv(ModCmd, SideLeft),
				modUpEv(ModCmd, SideLeft),
			},
			want: []bool{true, false, true, false},
		},
		{
			name: "key repeat is idempotent",
			spec: "cmd_r",
			events: []KeyEvent{
				modDownEv(ModCmd, SideRight),
				modDownEv(ModCmd, SideRight),
				modDownEv(ModCmd, SideRight),
				modUpEv(ModCmd, SideRight),
			},
			want: []bool{true, false},
		},
		{
			name: "subset of a chord never triggers",
			spec: "ctrl+shift+space",
			events: []KeyEvent{
				modDownEv(ModCtrl, SideLeft),
				modDownEv(ModShift, SideLeft),
				modUpEv(ModShift, SideLeft),
				modUpEv(ModCtrl, SideLeft),
			},
			want: nil,
		},
		{
			name: "chord triggers once all parts are down",
			spec: "ctrl+shift+space",
			events: []KeyEvent{
				modDownEv(ModCtrl, SideLeft),
				modDownEv(ModShift, SideRight),
				keyDownEv("space"),
				keyUpEv("space"),
			},
			want: []bool{true, false},
		},
		{
			name: "releasing any required key ends the hold",
			spec: "shift_r+a",
			events: []KeyEvent{
				modDownEv(ModShift, SideRight),
				keyDownEv("a"),
				modUpEv(ModShift, SideRight),
				keyUpEv("a"),
			},
			want: []bool{true, false},
		},
		{
			name: "unrelated keys during hold are ignored",
			spec: "cmd_r",
			events: []KeyEvent{
				modDownEv(ModCmd, SideRight),
				keyDownEv("x"),
				keyUpEv("x"),
				modUpEv(ModCmd, SideRight),
			},
			want: []bool{true, false},
		},
		{
			name: "re-press after release starts a new hold",
			spec: "shift_r+a",
			events: []KeyEvent{
				modDownEv(ModShift, SideRight),
				keyDownEv("a"),
				keyUpEv("a"),
				keyDownEv("a"),
				keyUpEv("a"),
				modUpEv(ModShift, SideRight),
			},
			want: []bool{true, false, true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := ParseCombo(tt.spec)
			if err != nil {
				t.Fatalf("ParseCombo(%q) error = %v", tt.spec, err)
			}
			rec := &holdRecorder{}
			m := NewMatcher(combo, rec.handle)
			for _, ev := range tt.events {
				m.Handle(ev)
			}
			if len(rec.transitions) != len(tt.want) {
				t.Fatalf("transitions = %v, want %v", rec.transitions, tt.want)
			}
			for i := range tt.want {
				if rec.transitions[i] != tt.want[i] {
					t.Fatalf("transitions = %v, want %v", rec.transitions, tt.want)
				}
			}
			if m.Held() {
				t.Errorf("Held() = true after all keys released")
			}
		})
	}
}

func TestMatcher_HoldBalance(t *testing.T) {
	// Every hold start must be balanced by exactly one hold end, no matter
	// how noisy the event stream is.
	combo, err := ParseCombo("ctrl+shift")
	if err != nil {
		t.Fatalf("ParseCombo error = %v", err)
	}
	rec := &holdRecorder{}
	m := NewMatcher(combo, rec.handle)

	events := []KeyEvent{
		modDownEv(ModCtrl, SideLeft),
		modDownEv(ModCtrl, SideLeft), // repeat
		modDownEv(ModShift, SideLeft),
		modDownEv(ModShift, SideLeft), // repeat
		modUpEv(ModCtrl, SideLeft),
		modDownEv(ModCtrl, SideRight), // re-satisfied via the other side
		modUpEv(ModShift, SideLeft),
		modUpEv(ModCtrl, SideRight),
	}
	for _, ev := range events {
		m.Handle(ev)
	}

	starts, ends := 0, 0
	for _, held := range rec.transitions {
		if held {
			starts++
		} else {
			ends++
		}
	}
	if starts != ends {
		t.Fatalf("unbalanced transitions: %d starts, %d ends (%v)", starts, ends, rec.transitions)
	}
	if starts != 2 {
		t.Errorf("got %d holds, want 2 (%v)", starts, rec.transitions)
	}
}
