// Package clipboard pastes text at the current input focus via the
// clipboard, preserving whatever the user had there before.
package clipboard

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Device exposes the OS clipboard and paste-injection primitives.
type Device interface {
	// ReadText returns the current clipboard text and whether text was
	// present at all.
	ReadText() (text string, present bool, err error)
	WriteText(text string) error
	Clear() error
	// InjectPaste triggers a simulated paste keystroke at the current
	// input focus.
	InjectPaste() error
}

// PasteError reports a failed paste injection. The clipboard is restored
// regardless.
type PasteError struct {
	Err error
}

func (e *PasteError) Error() string { return fmt.Sprintf("paste failed: %v", e.Err) }
func (e *PasteError) Unwrap() error { return e.Err }

// Snapshot is the clipboard contents saved before a programmatic paste.
type Snapshot struct {
	Text    string
	Present bool
}

// Config tunes the coordinator's two bounded waits.
type Config struct {
	// PrimeDelay lets the clipboard write land before the paste
	// keystroke is injected. Default 50 ms.
	PrimeDelay time.Duration
	// SettleDelay lets the target application read the clipboard before
	// it is restored. Default 150 ms.
	SettleDelay time.Duration
}

// Coordinator performs the snapshot-set-paste-restore sequence. Calls are
// serialized: at most one snapshot is outstanding, and a second paste
// waits for the first's restore to complete.
type Coordinator struct {
	mu  sync.Mutex
	dev Device
	cfg Config
}

// NewCoordinator creates a coordinator over dev.
func NewCoordinator(dev Device, cfg Config) *Coordinator {
	if cfg.PrimeDelay == 0 {
		cfg.PrimeDelay = 50 * time.Millisecond
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = 150 * time.Millisecond
	}
	return &Coordinator{dev: dev, cfg: cfg}
}

// PasteText pastes text at the current input focus and restores the
// prior clipboard contents on every exit path. Empty text is a complete
// no-op: nothing is pasted and the clipboard is untouched.
func (c *Coordinator) PasteText(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshot()
	defer c.restore(snap)

	if err := c.dev.WriteText(text); err != nil {
		return &PasteError{Err: err}
	}
	if err := sleep(ctx, c.cfg.PrimeDelay); err != nil {
		return &PasteError{Err: err}
	}
	if err := c.dev.InjectPaste(); err != nil {
		return &PasteError{Err: err}
	}
	if err := sleep(ctx, c.cfg.SettleDelay); err != nil {
		return &PasteError{Err: err}
	}
	return nil
}

func (c *Coordinator) snapshot() Snapshot {
	text, present, err := c.dev.ReadText()
	if err != nil {
		return Snapshot{}
	}
	return Snapshot{Text: text, Present: present}
}

func (c *Coordinator) restore(snap Snapshot) {
	if snap.Present {
		_ = c.dev.WriteText(snap.Text)
		return
	}
	_ = c.dev.Clear()
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
