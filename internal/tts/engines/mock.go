package engines

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/movement-lab/voiceover/internal/pcm"
	"github.com/movement-lab/voiceover/internal/tts"
)

// MockEngine implements tts.Backend without any network access. It returns
// a WAV of silence whose length follows the text, so dry runs produce
// realistic file names and sizes.
type MockEngine struct {
	perRune time.Duration
	calls   int
}

// MockConfig holds configuration for the mock engine.
type MockConfig struct {
	// PerRune is the silence generated per character (default 60ms).
	PerRune time.Duration
}

// NewMockEngine creates a mock engine.
func NewMockEngine(config MockConfig) *MockEngine {
	if config.PerRune == 0 {
		config.PerRune = 60 * time.Millisecond
	}
	return &MockEngine{perRune: config.PerRune}
}

// Synthesize returns silence in a WAV container.
func (e *MockEngine) Synthesize(ctx context.Context, text string, _ tts.VoiceSelection, enc tts.AudioEncoding) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if enc != tts.EncodingLinear16 {
		return nil, tts.ErrUnsupportedEncoding
	}
	e.calls++

	format := pcm.DefaultFormat()
	d := time.Duration(utf8.RuneCountInString(text)) * e.perRune
	return pcm.EncodeWAV(pcm.Silence(d, format), format), nil
}

// Calls returns the number of successful Synthesize calls.
func (e *MockEngine) Calls() int {
	return e.calls
}

// Name returns "mock".
func (e *MockEngine) Name() string {
	return string(tts.EngineMock)
}

// CacheKey includes the per-character duration, which sets clip length.
func (e *MockEngine) CacheKey() string {
	return "mock|" + e.perRune.String()
}

// Close does nothing.
func (e *MockEngine) Close() error {
	return nil
}
