// Package hotkey parses push-to-talk key combinations and detects when
// the configured combination is held across a raw key event stream.
package hotkey

import (
	"fmt"
	"strings"
)

// Mod identifies a modifier key, side-agnostic.
type Mod uint8

const (
	ModCmd Mod = iota
	ModShift
	ModCtrl
	ModAlt
)

func (m Mod) String() string {
	switch m {
	case ModCmd:
		return "cmd"
	case ModShift:
		return "shift"
	case ModCtrl:
		return "ctrl"
	case ModAlt:
		return "alt"
	}
	return "unknown"
}

// Side constrains which physical variant of a modifier satisfies a combo.
type Side uint8

const (
	SideAny Side = iota
	SideLeft
	SideRight
)

// ModReq is one required modifier with its side constraint.
type ModReq struct {
	Mod  Mod
	Side Side
}

// Combo is an immutable parsed hotkey: required modifiers plus at most
// one non-modifier key.
type Combo struct {
	Mods []ModReq
	Key  string // normalized key token, empty if the combo is modifiers only
}

// modAliases maps config tokens to modifiers. Aliases match the names the
// original settings files accept.
var modAliases = map[string]Mod{
	"cmd":     ModCmd,
	"command": ModCmd,
	"super":   ModCmd,
	"win":     ModCmd,
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
}

// ParseCombo parses a spec like "cmd_r", "ctrl+shift+space" or "shift_r+a".
// Modifier tokens may carry a _l/_r suffix for a side-specific variant.
// A combo with zero keys is invalid.
func ParseCombo(spec string) (Combo, error) {
	var combo Combo
	for _, raw := range strings.Split(spec, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			return Combo{}, fmt.Errorf("empty token in hotkey %q", spec)
		}

		name, side := splitSide(token)
		if mod, ok := modAliases[name]; ok {
			combo.Mods = append(combo.Mods, ModReq{Mod: mod, Side: side})
			continue
		}
		if side != SideAny {
			return Combo{}, fmt.Errorf("unknown modifier %q in hotkey %q", token, spec)
		}
		if combo.Key != "" {
			return Combo{}, fmt.Errorf("hotkey %q has more than one non-modifier key", spec)
		}
		if !validKeyToken(token) {
			return Combo{}, fmt.Errorf("unknown key %q in hotkey %q", token, spec)
		}
		combo.Key = normalizeKey(token)
	}

	if len(combo.Mods) == 0 && combo.Key == "" {
		return Combo{}, fmt.Errorf("hotkey %q has no keys", spec)
	}
	return combo, nil
}

// String renders the combo back in config grammar.
func (c Combo) String() string {
	parts := make([]string, 0, len(c.Mods)+1)
	for _, m := range c.Mods {
		name := m.Mod.String()
		switch m.Side {
		case SideLeft:
			name += "_l"
		case SideRight:
			name += "_r"
		}
		parts = append(parts, name)
	}
	if c.Key != "" {
		parts = append(parts, c.Key)
	}
	return strings.Join(parts, "+")
}

func splitSide(token string) (string, Side) {
	switch {
	case strings.HasSuffix(token, "_l"):
		return strings.TrimSuffix(token, "_l"), SideLeft
	case strings.HasSuffix(token, "_r"):
		return strings.TrimSuffix(token, "_r"), SideRight
	}
	return token, SideAny
}

// validKeyToken accepts single printable characters and the named keys the
// listener can observe.
func validKeyToken(token string) bool {
	if len(token) == 1 {
		ch := token[0]
		return ch > ' ' && ch <= '~'
	}
	if _, ok := namedKeys[token]; ok {
		return true
	}
	// function keys f1..f24
	if strings.HasPrefix(token, "f") {
		rest := token[1:]
		if rest == "" || len(rest) > 2 {
			return false
		}
		for i := 0; i < len(rest); i++ {
			if rest[i] < '0' || rest[i] > '9' {
				return false
			}
		}
		return rest != "0"
	}
	return false
}

// normalizeKey collapses named-key aliases to the names the listener emits.
func normalizeKey(token string) string {
	switch token {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return token
}

var namedKeys = map[string]struct{}{
	"space":  {},
	"esc":    {},
	"escape": {},
	"tab":    {},
	"enter":  {},
	"return": {},
}
