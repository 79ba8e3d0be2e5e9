package tts

import (
	"strings"
)

// EngineType represents the synthesis engine selection
type EngineType string

const (
	// EngineGoogle represents Google Cloud Text-to-Speech
	EngineGoogle EngineType = "google"

	// EnginePolly represents AWS Polly
	EnginePolly EngineType = "polly"

	// EngineMock represents the offline mock engine used for dry runs
	EngineMock EngineType = "mock"

	// EngineNone represents no engine selected
	EngineNone EngineType = ""
)

// AudioEncoding names the audio format requested from a backend.
type AudioEncoding string

const (
	// EncodingLinear16 is 16-bit signed little-endian PCM in a WAV container.
	EncodingLinear16 AudioEncoding = "LINEAR16"

	// EncodingMP3 is MP3 audio.
	EncodingMP3 AudioEncoding = "MP3"

	// EncodingOggOpus is Opus audio in an Ogg container.
	EncodingOggOpus AudioEncoding = "OGG_OPUS"
)

// VoiceSelection identifies the voice a backend should speak with.
type VoiceSelection struct {
	LanguageCode string // e.g. "en-US"
	Name         string // e.g. "en-US-Wavenet-C"
}

// NewVoiceSelection builds a VoiceSelection whose language code is derived
// from the voice name.
func NewVoiceSelection(voiceName string) VoiceSelection {
	return VoiceSelection{
		LanguageCode: LanguageCode(voiceName),
		Name:         voiceName,
	}
}

// Request is one synthesis call: a unit of text spoken by one voice.
type Request struct {
	Voice VoiceSelection
	Text  string
}

// Artifact is the audio produced by one Request, bound to the file it is
// written to. It is not retained after the write.
type Artifact struct {
	Filename string
	Bytes    []byte
}

// Segment is one part of a text split on '.'.
type Segment struct {
	// Index is the zero-based position of the part among all split parts,
	// blank ones included.
	Index int

	// Text is the part exactly as split, surrounding whitespace included.
	Text string
}

// Blank reports whether the segment has nothing to speak.
func (s Segment) Blank() bool {
	return strings.TrimSpace(s.Text) == ""
}
