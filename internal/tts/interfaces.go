package tts

import (
	"context"
)

// Backend defines the contract for speech synthesis services.
// Implementations include Google Cloud TTS and AWS Polly (online) and a
// mock engine for dry runs. A Backend is used by one goroutine at a time.
type Backend interface {
	// Synthesize converts text to audio bytes in the requested encoding.
	// The returned bytes are written to disk unchanged, so LINEAR16 output
	// must already carry its WAV header.
	Synthesize(ctx context.Context, text string, voice VoiceSelection, enc AudioEncoding) ([]byte, error)

	// Name returns the engine name (e.g. "google", "polly").
	Name() string

	// Close releases any resources held by the engine.
	Close() error
}

// Synthesizer is implemented by *Batch. Callers that only need to submit
// jobs (the manifest runner, tests) depend on this instead.
type Synthesizer interface {
	Synthesize(ctx context.Context, voiceName, text, label string, opts ...Option) ([]string, error)
}
