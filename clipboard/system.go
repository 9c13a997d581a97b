package clipboard

import (
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/micmonay/keybd_event"
)

// SystemDevice implements Device on the real OS clipboard and keyboard.
type SystemDevice struct{}

// NewSystemDevice creates the OS-backed device.
func NewSystemDevice() *SystemDevice {
	return &SystemDevice{}
}

// ReadText reads the clipboard. The OS API cannot distinguish an absent
// pasteboard item from empty text, so empty reads as absent.
func (SystemDevice) ReadText() (string, bool, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", false, err
	}
	return text, text != "", nil
}

func (SystemDevice) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

func (SystemDevice) Clear() error {
	return clipboard.WriteAll("")
}

// InjectPaste sends the platform paste chord: Cmd+V on macOS, Ctrl+V
// elsewhere.
func (SystemDevice) InjectPaste() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if runtime.GOOS == "darwin" {
		kb.HasSuper(true)
	} else {
		kb.HasCTRL(true)
	}
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}
