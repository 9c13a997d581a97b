package audiocapture

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer bounds the capture callback period; stop takes effect
// within one callback's worth of audio (64 ms at 16 kHz).
const framesPerBuffer = 1024

// PortAudioDevice captures the default input device through PortAudio.
type PortAudioDevice struct {
	stream *portaudio.Stream
}

// NewPortAudioDevice creates an unopened device.
func NewPortAudioDevice() *PortAudioDevice {
	return &PortAudioDevice{}
}

// Start opens the default input stream at sampleRate, mono. The callback
// receives each frame block from PortAudio's capture context; the slice
// is only valid for the duration of the call.
func (d *PortAudioDevice) Start(sampleRate int, callback func(samples []float32)) error {
	if d.stream != nil {
		return errors.New("portaudio stream already open")
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), framesPerBuffer,
		func(in []float32) {
			callback(in)
		})
	if err != nil {
		_ = portaudio.Terminate()
		return fmt.Errorf("open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return fmt.Errorf("start input stream: %w", err)
	}

	d.stream = stream
	return nil
}

// Stop aborts the stream without waiting for pending buffers to flush.
func (d *PortAudioDevice) Stop() error {
	if d.stream == nil {
		return nil
	}
	err := d.stream.Abort()
	if cerr := d.stream.Close(); err == nil {
		err = cerr
	}
	d.stream = nil
	_ = portaudio.Terminate()
	return err
}

// DefaultInputName returns the name of the default input device, for the
// status display. Failures degrade to "Unknown" rather than erroring.
func DefaultInputName() string {
	if err := portaudio.Initialize(); err != nil {
		return "Unknown"
	}
	defer portaudio.Terminate()

	info, err := portaudio.DefaultInputDevice()
	if err != nil || info == nil {
		return "Unknown"
	}
	return info.Name
}
