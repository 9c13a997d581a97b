package clipboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeDevice is an in-memory clipboard that records every operation.
type fakeDevice struct {
	mu      sync.Mutex
	text    string
	present bool
	ops     []string

	writeErr error
	pasteErr error
}

func (d *fakeDevice) ReadText() (string, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "read")
	return d.text, d.present, nil
}

func (d *fakeDevice) WriteText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "write:"+text)
	if d.writeErr != nil {
		return d.writeErr
	}
	d.text = text
	d.present = true
	return nil
}

func (d *fakeDevice) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "clear")
	d.text = ""
	d.present = false
	return nil
}

func (d *fakeDevice) InjectPaste() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ops = append(d.ops, "paste:"+d.text)
	return d.pasteErr
}

func (d *fakeDevice) snapshot() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text, d.present
}

func (d *fakeDevice) operations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

func testConfig() Config {
	return Config{PrimeDelay: time.Millisecond, SettleDelay: time.Millisecond}
}

func TestCoordinator_PasteText(t *testing.T) {
	tests := []struct {
		name        string
		dev         *fakeDevice
		text        string
		wantErr     bool
		wantText    string
		wantPresent bool
		wantOps     []string
	}{
		{
			name:        "prior contents restored after paste",
			dev:         &fakeDevice{text: "before", present: true},
			text:        "hello world",
			wantText:    "before",
			wantPresent: true,
			wantOps:     []string{"read", "write:hello world", "paste:hello world", "write:before"},
		},
		{
			name:        "empty clipboard cleared after paste",
			dev:         &fakeDevice{},
			text:        "hello",
			wantText:    "",
			wantPresent: false,
			wantOps:     []string{"read", "write:hello", "paste:hello", "clear"},
		},
		{
			name:        "empty text is a no-op",
			dev:         &fakeDevice{text: "before", present: true},
			text:        "",
			wantOps:     nil,
			wantText:    "before",
			wantPresent: true,
		},
		{
			name:        "restore runs even when injection fails",
			dev:         &fakeDevice{text: "before", present: true, pasteErr: errors.New("no permission")},
			text:        "hello",
			wantErr:     true,
			wantText:    "before",
			wantPresent: true,
			wantOps:     []string{"read", "write:hello", "paste:hello", "write:before"},
		},
		{
			name:        "restore runs even when the write fails",
			dev:         &fakeDevice{text: "before", present: true, writeErr: errors.New("clipboard busy")},
			text:        "hello",
			wantErr:     true,
			wantText:    "before",
			wantPresent: true,
			wantOps:     []string{"read", "write:hello", "write:before"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(tt.dev, testConfig())
			err := c.PasteText(context.Background(), tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PasteText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var pe *PasteError
				if !errors.As(err, &pe) {
					t.Errorf("PasteText() error = %T, want *PasteError", err)
				}
			}

			text, present := tt.dev.snapshot()
			if text != tt.wantText || present != tt.wantPresent {
				t.Errorf("clipboard after paste = (%q, %v), want (%q, %v)", text, present, tt.wantText, tt.wantPresent)
			}

			ops := tt.dev.operations()
			if len(ops) != len(tt.wantOps) {
				t.Fatalf("operations = %v, want %v", ops, tt.wantOps)
			}
			for i := range tt.wantOps {
				if ops[i] != tt.wantOps[i] {
					t.Fatalf("operations = %v, want %v", ops, tt.wantOps)
				}
			}
		})
	}
}

func TestCoordinator_PasteText_Canceled(t *testing.T) {
	dev := &fakeDevice{text: "before", present: true}
	c := NewCoordinator(dev, Config{PrimeDelay: time.Hour, SettleDelay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.PasteText(ctx, "hello")
	if err == nil {
		t.Fatal("PasteText() error = nil, want context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PasteText() error = %v, want context.Canceled", err)
	}

	text, present := dev.snapshot()
	if text != "before" || !present {
		t.Errorf("clipboard after cancel = (%q, %v), want (%q, true)", text, present, "before")
	}
}

func TestCoordinator_Serializes(t *testing.T) {
	dev := &fakeDevice{text: "before", present: true}
	c := NewCoordinator(dev, testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.PasteText(context.Background(), "payload"); err != nil {
				t.Errorf("PasteText() error = %v", err)
			}
		}()
	}
	wg.Wait()

	// With serialized cycles every snapshot sees the fully restored
	// clipboard, so the original contents survive all four pastes.
	text, present := dev.snapshot()
	if text != "before" || !present {
		t.Errorf("clipboard after concurrent pastes = (%q, %v), want (%q, true)", text, present, "before")
	}

	ops := dev.operations()
	if len(ops) != 4*4 {
		t.Fatalf("got %d operations, want %d: %v", len(ops), 4*4, ops)
	}
	for i := 0; i < len(ops); i += 4 {
		cycle := ops[i : i+4]
		want := []string{"read", "write:payload", "paste:payload", "write:before"}
		for j := range want {
			if cycle[j] != want[j] {
				t.Fatalf("cycle %d = %v, want %v", i/4, cycle, want)
			}
		}
	}
}
