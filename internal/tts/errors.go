package tts

import (
	"errors"
	"fmt"
)

// Common synthesis errors
var (
	// ErrNoEngineConfigured indicates no engine has been selected
	ErrNoEngineConfigured = errors.New("no TTS engine configured - specify --engine google, polly or mock")

	// ErrInvalidEngine indicates an unknown engine was specified
	ErrInvalidEngine = errors.New("invalid TTS engine specified")

	// ErrEmptyVoice indicates a synthesize call without a voice name
	ErrEmptyVoice = errors.New("voice name must not be empty")

	// ErrUnsupportedEncoding indicates a backend cannot produce the requested encoding
	ErrUnsupportedEncoding = errors.New("unsupported audio encoding")
)

// SynthesisError reports which clip of a batch failed. Earlier clips of the
// same batch have already been written when it is returned.
type SynthesisError struct {
	// Index is the 1-based sentence index, or 0 in single-shot mode.
	Index int
	File  string
	Err   error
}

// Error implements the error interface
func (e *SynthesisError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("sentence %d (%s): %v", e.Index, e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error
func (e *SynthesisError) Unwrap() error {
	return e.Err
}
