package audio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/movement-lab/voiceover/internal/pcm"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindClipsOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"en-US-Wavenet-C_landmark_task_10.wav",
		"en-US-Wavenet-C_landmark_task_2.wav",
		"en-US-Wavenet-C_landmark_task_1.wav",
		"en-US-Wavenet-C_end_of_block.wav",
		"notes.txt",
	)
	if err := os.Mkdir(filepath.Join(dir, "target_calibration"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindClips(dir, "")
	if err != nil {
		t.Fatalf("FindClips failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "en-US-Wavenet-C_end_of_block.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_landmark_task_1.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_landmark_task_2.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_landmark_task_10.wav"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindClips() = %v\nwant %v", got, want)
	}
}

func TestFindClipsQuery(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir,
		"en-US-Wavenet-C_landmark_task_2.wav",
		"en-US-Wavenet-C_landmark_task_1.wav",
		"en-US-Wavenet-C_end_of_block.wav",
	)

	got, err := FindClips(dir, "landmark")
	if err != nil {
		t.Fatalf("FindClips failed: %v", err)
	}

	want := []string{
		filepath.Join(dir, "en-US-Wavenet-C_landmark_task_1.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_landmark_task_2.wav"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindClips() = %v\nwant %v", got, want)
	}
}

func TestFindClipsMissingDir(t *testing.T) {
	if _, err := FindClips(filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSplitIndex(t *testing.T) {
	tests := []struct {
		name     string
		wantStem string
		wantN    int
	}{
		{"en-US-Wavenet-C_greet_1.wav", "en-US-Wavenet-C_greet", 1},
		{"en-US-Wavenet-C_greet_12.wav", "en-US-Wavenet-C_greet", 12},
		{"en-US-Wavenet-C_wave.wav", "en-US-Wavenet-C_wave", 0},
		{"clip.wav", "clip", 0},
	}

	for _, tt := range tests {
		stem, n := splitIndex(tt.name)
		if stem != tt.wantStem || n != tt.wantN {
			t.Errorf("splitIndex(%q) = (%q, %d), want (%q, %d)", tt.name, stem, n, tt.wantStem, tt.wantN)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  pcm.Format
		wantErr bool
	}{
		{"google wavenet", pcm.Format{SampleRate: 24000, Channels: 1, BitDepth: 16}, false},
		{"polly", pcm.DefaultFormat(), false},
		{"stereo", pcm.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}, false},
		{"8-bit", pcm.Format{SampleRate: 16000, Channels: 1, BitDepth: 8}, true},
		{"no channels", pcm.Format{SampleRate: 16000, BitDepth: 16}, true},
		{"no rate", pcm.Format{Channels: 1, BitDepth: 16}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateFormat(tt.format); (err != nil) != tt.wantErr {
				t.Errorf("validateFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
