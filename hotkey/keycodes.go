package hotkey

import "runtime"

// modKey pairs a modifier with the side the OS reported.
type modKey struct {
	mod  Mod
	side Side
}

// Platform rawcode tables for the gohook event stream. gohook reports the
// OS-native code in Event.Rawcode: CGKeyCode on darwin, X11 keysyms on
// linux, virtual-key codes on windows.
var (
	darwinModifiers = map[uint16]modKey{
		54: {ModCmd, SideRight},
		55: {ModCmd, SideLeft},
		56: {ModShift, SideLeft},
		60: {ModShift, SideRight},
		59: {ModCtrl, SideLeft},
		62: {ModCtrl, SideRight},
		58: {ModAlt, SideLeft},
		61: {ModAlt, SideRight},
	}
	darwinNamed = map[uint16]string{
		49:  "space",
		53:  "esc",
		36:  "enter",
		48:  "tab",
		122: "f1", 120: "f2", 99: "f3", 118: "f4",
		96: "f5", 97: "f6", 98: "f7", 100: "f8",
		101: "f9", 109: "f10", 103: "f11", 111: "f12",
	}

	linuxModifiers = map[uint16]modKey{
		65515: {ModCmd, SideLeft},
		65516: {ModCmd, SideRight},
		65505: {ModShift, SideLeft},
		65506: {ModShift, SideRight},
		65507: {ModCtrl, SideLeft},
		65508: {ModCtrl, SideRight},
		65513: {ModAlt, SideLeft},
		65514: {ModAlt, SideRight},
	}
	linuxNamed = map[uint16]string{
		32:    "space",
		65307: "esc",
		65293: "enter",
		65289: "tab",
		65470: "f1", 65471: "f2", 65472: "f3", 65473: "f4",
		65474: "f5", 65475: "f6", 65476: "f7", 65477: "f8",
		65478: "f9", 65479: "f10", 65480: "f11", 65481: "f12",
	}

	windowsModifiers = map[uint16]modKey{
		91:  {ModCmd, SideLeft},
		92:  {ModCmd, SideRight},
		160: {ModShift, SideLeft},
		161: {ModShift, SideRight},
		162: {ModCtrl, SideLeft},
		163: {ModCtrl, SideRight},
		164: {ModAlt, SideLeft},
		165: {ModAlt, SideRight},
	}
	windowsNamed = map[uint16]string{
		32: "space",
		27: "esc",
		13: "enter",
		9:  "tab",
		112: "f1", 113: "f2", 114: "f3", 115: "f4",
		116: "f5", 117: "f6", 118: "f7", 119: "f8",
		120: "f9", 121: "f10", 122: "f11", 123: "f12",
	}
)

func platformTables() (map[uint16]modKey, map[uint16]string) {
	switch runtime.GOOS {
	case "darwin":
		return darwinModifiers, darwinNamed
	case "windows":
		return windowsModifiers, windowsNamed
	default:
		return linuxModifiers, linuxNamed
	}
}
