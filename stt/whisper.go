package stt

import (
	"bytes"
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/text/unicode/norm"
)

const sampleRate = 16000

// minSamples is 0.3 s of audio; anything shorter is a tap-and-release
// and transcribes to nothing without a network call.
const minSamples = sampleRate * 3 / 10

// Config holds configuration for the Whisper client.
type Config struct {
	APIKey   string
	BaseURL  string // optional, defaults to the OpenAI API
	Model    string // optional, defaults to "whisper-1"
	Language string // optional, empty means auto-detect
}

// Client transcribes buffered audio through the OpenAI transcription API.
type Client struct {
	api      openai.Client
	model    string
	language string
}

// New creates a Whisper client.
func New(cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "whisper-1"
	}

	return &Client{
		api:      openai.NewClient(opts...),
		model:    model,
		language: cfg.Language,
	}
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Transcribe converts mono 16 kHz PCM samples to text. Empty or
// sub-threshold input yields an empty string, not an error; engine
// failures return a *FailedError.
func (c *Client) Transcribe(ctx context.Context, samples []float32) (string, error) {
	if len(samples) < minSamples {
		return "", nil
	}

	params := openai.AudioTranscriptionNewParams{
		File:  openai.File(bytes.NewReader(encodeWAV(samples, sampleRate)), "audio.wav", "audio/wav"),
		Model: openai.AudioModel(c.model),
	}
	if c.language != "" && c.language != "auto" {
		params.Language = openai.String(c.language)
	}

	resp, err := c.api.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", &FailedError{Reason: "transcription request", Err: err}
	}

	return norm.NFC.String(strings.TrimSpace(resp.Text)), nil
}
