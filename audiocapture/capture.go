// Package audiocapture records microphone input into a per-session buffer.
package audiocapture

import (
	"errors"
	"time"
)

// ErrDeviceUnavailable is returned when no input device exists or access
// to it is denied.
var ErrDeviceUnavailable = errors.New("audiocapture: input device unavailable")

// ErrRunning is returned when trying to start capture while already capturing.
var ErrRunning = errors.New("audiocapture: already capturing")

// Device is the platform capture implementation. start delivers sample
// frames to the callback from the device's own context until stop.
type Device interface {
	Start(sampleRate int, callback func(samples []float32)) error
	Stop() error
}

// Config holds configuration for audio capture.
type Config struct {
	SampleRate int // default 16000 Hz, what Whisper expects
}

// Capture owns the input stream and the active session buffer. One
// session buffer exists at a time; Stop moves it out to the caller.
// Callers serialize Start/Stop; the device callback runs concurrently
// and only touches the guarded buffer.
type Capture struct {
	dev        Device
	sampleRate int

	recording bool
	started   time.Time
	buf       *Buffer
}

// New creates a capture backed by dev.
func New(dev Device, cfg Config) *Capture {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	return &Capture{dev: dev, sampleRate: cfg.SampleRate}
}

// Start opens the input stream and begins appending frames to a fresh
// buffer. On device failure no buffer is retained and the error wraps
// ErrDeviceUnavailable.
func (c *Capture) Start() error {
	if c.recording {
		return ErrRunning
	}

	buf := NewBuffer()
	if err := c.dev.Start(c.sampleRate, buf.Append); err != nil {
		return errors.Join(ErrDeviceUnavailable, err)
	}

	c.buf = buf
	c.recording = true
	c.started = time.Now()
	return nil
}

// Stop closes the stream and moves the session's samples out. Stopping
// while not recording is a no-op returning an empty buffer.
func (c *Capture) Stop() []float32 {
	if !c.recording {
		return nil
	}
	_ = c.dev.Stop()
	samples := c.buf.Take()
	c.buf = nil
	c.recording = false
	return samples
}

// Recording reports whether a session is active.
func (c *Capture) Recording() bool {
	return c.recording
}

// Duration returns how long the active session has been recording.
func (c *Capture) Duration() time.Duration {
	if !c.recording {
		return 0
	}
	return time.Since(c.started)
}

// SampleRate returns the configured sample rate.
func (c *Capture) SampleRate() int {
	return c.sampleRate
}
