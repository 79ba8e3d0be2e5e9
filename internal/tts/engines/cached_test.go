package engines

import (
	"bytes"
	"context"
	"testing"

	"github.com/movement-lab/voiceover/internal/cache"
	"github.com/movement-lab/voiceover/internal/pcm"
	"github.com/movement-lab/voiceover/internal/tts"
)

func TestCachedEngine_ServesRepeatsFromCache(t *testing.T) {
	store, err := cache.NewDiskCache(t.TempDir(), 1024*1024, 3)
	if err != nil {
		t.Fatalf("NewDiskCache failed: %v", err)
	}
	mock := NewMockEngine(MockConfig{})
	engine := NewCachedEngine(mock, store)
	defer engine.Close() //nolint:errcheck

	voice := tts.NewVoiceSelection("en-US-Wavenet-C")
	first, err := engine.Synthesize(context.Background(), "Calibration saved", voice, tts.EncodingLinear16)
	if err != nil {
		t.Fatalf("first Synthesize failed: %v", err)
	}
	second, err := engine.Synthesize(context.Background(), "Calibration saved", voice, tts.EncodingLinear16)
	if err != nil {
		t.Fatalf("second Synthesize failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("cached bytes differ from original response")
	}
	if mock.Calls() != 1 {
		t.Errorf("backend calls = %d, want 1", mock.Calls())
	}

	// A different voice is a different clip.
	if _, err := engine.Synthesize(context.Background(), "Calibration saved", tts.NewVoiceSelection("en-US-Wavenet-D"), tts.EncodingLinear16); err != nil {
		t.Fatalf("third Synthesize failed: %v", err)
	}
	if mock.Calls() != 2 {
		t.Errorf("backend calls = %d, want 2", mock.Calls())
	}
	if engine.Name() != "mock" {
		t.Errorf("Name() = %q, want wrapped engine name", engine.Name())
	}
}

func TestCachedEngine_BackendSettingsArePartOfTheKey(t *testing.T) {
	dir := t.TempDir()
	voice := tts.NewVoiceSelection("Joanna")
	raw := []byte{1, 0, 2, 0}

	synthesize := func(config PollyConfig) (*fakePolly, []byte) {
		t.Helper()
		store, err := cache.NewDiskCache(dir, 1024*1024, 3)
		if err != nil {
			t.Fatalf("NewDiskCache failed: %v", err)
		}
		client := &fakePolly{audio: raw}
		engine := NewCachedEngine(newPollyEngine(client, config), store)
		defer engine.Close() //nolint:errcheck

		audio, err := engine.Synthesize(context.Background(), "Hello", voice, tts.EncodingLinear16)
		if err != nil {
			t.Fatalf("Synthesize failed: %v", err)
		}
		return client, audio
	}

	tests := []struct {
		name      string
		config    PollyConfig
		wantCalls int
		wantRate  int
	}{
		{"first run fills the cache", PollyConfig{Engine: "neural", SampleRate: 16000}, 1, 16000},
		{"same settings hit the cache", PollyConfig{Engine: "neural", SampleRate: 16000}, 0, 16000},
		{"new sample rate misses", PollyConfig{Engine: "neural", SampleRate: 8000}, 1, 8000},
		{"new polly engine misses", PollyConfig{Engine: "standard", SampleRate: 16000}, 1, 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, audio := synthesize(tt.config)
			if len(client.inputs) != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", len(client.inputs), tt.wantCalls)
			}
			format, _, err := pcm.DecodeWAV(audio)
			if err != nil {
				t.Fatalf("expected WAV output: %v", err)
			}
			if format.SampleRate != tt.wantRate {
				t.Errorf("sample rate = %d, want %d", format.SampleRate, tt.wantRate)
			}
		})
	}
}

func TestCacheIdentity(t *testing.T) {
	tests := []struct {
		name    string
		backend tts.Backend
		want    string
	}{
		{"polly", newPollyEngine(&fakePolly{}, PollyConfig{Engine: "neural", SampleRate: 8000}), "polly|neural|8000"},
		{"mock", NewMockEngine(MockConfig{}), "mock|60ms"},
		{"google", newGoogleEngine(&fakeSpeechClient{}, 0), "google"},
	}

	for _, tt := range tests {
		if got := cacheIdentity(tt.backend); got != tt.want {
			t.Errorf("%s: cacheIdentity() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
