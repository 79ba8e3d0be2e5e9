package tts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// stubBackend records every call and returns the text itself as audio.
type stubBackend struct {
	calls  []Request
	encs   []AudioEncoding
	failAt int // 1-based call number that fails, 0 for never
	err    error
}

func (s *stubBackend) Synthesize(_ context.Context, text string, voice VoiceSelection, enc AudioEncoding) ([]byte, error) {
	s.calls = append(s.calls, Request{Voice: voice, Text: text})
	s.encs = append(s.encs, enc)
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return nil, s.err
	}
	return []byte("audio:" + text), nil
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Close() error { return nil }

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unable to read dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestBatchSynthesizeSentences(t *testing.T) {
	dir := t.TempDir()
	backend := &stubBackend{}
	batch := NewBatch(backend)

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Hello. World.", "greet", WithOutputDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "en-US-Wavenet-C_greet_1.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_greet_2.wav"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}

	if len(backend.calls) != 2 {
		t.Fatalf("expected 2 synthesis calls, got %d", len(backend.calls))
	}
	// Parts are sent untrimmed.
	if backend.calls[0].Text != "Hello" || backend.calls[1].Text != " World" {
		t.Errorf("unexpected call texts: %q, %q", backend.calls[0].Text, backend.calls[1].Text)
	}
	for i, call := range backend.calls {
		if call.Voice.Name != "en-US-Wavenet-C" || call.Voice.LanguageCode != "en-US" {
			t.Errorf("call %d: unexpected voice %+v", i, call.Voice)
		}
		if backend.encs[i] != EncodingLinear16 {
			t.Errorf("call %d: encoding = %s, want LINEAR16", i, backend.encs[i])
		}
	}

	data, err := os.ReadFile(want[1])
	if err != nil {
		t.Fatalf("unable to read clip: %v", err)
	}
	if string(data) != "audio: World" {
		t.Errorf("clip content = %q, want bytes exactly as returned", data)
	}
}

func TestBatchSynthesizeBlankSentenceKeepsIndex(t *testing.T) {
	dir := t.TempDir()
	backend := &stubBackend{}
	batch := NewBatch(backend)

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "A. . B.", "gap", WithOutputDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "en-US-Wavenet-C_gap_1.wav"),
		filepath.Join(dir, "en-US-Wavenet-C_gap_3.wav"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
	if len(backend.calls) != 2 {
		t.Errorf("expected 2 synthesis calls, got %d", len(backend.calls))
	}
	if got := listDir(t, dir); len(got) != 2 {
		t.Errorf("expected 2 files on disk, got %v", got)
	}
}

func TestBatchSynthesizeSingleShot(t *testing.T) {
	dir := t.TempDir()
	backend := &stubBackend{}
	batch := NewBatch(backend)

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Hi there. Again.", "wave",
		WithSentences(false), WithOutputDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{filepath.Join(dir, "en-US-Wavenet-C_wave.wav")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
	if len(backend.calls) != 1 || backend.calls[0].Text != "Hi there. Again." {
		t.Errorf("expected one call with the whole text, got %+v", backend.calls)
	}
}

func TestBatchSynthesizeSentenceCounts(t *testing.T) {
	tests := []struct {
		text      string
		wantFiles []string
	}{
		{"Hi there", []string{"v-X_l_1.wav"}},
		{"", nil},
		{" . . ", nil},
		{"One. Two. Three", []string{"v-X_l_1.wav", "v-X_l_2.wav", "v-X_l_3.wav"}},
		{"..A", []string{"v-X_l_3.wav"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dir := t.TempDir()
			batch := NewBatch(&stubBackend{})
			files, err := batch.Synthesize(context.Background(), "v-X", tt.text, "l", WithOutputDir(dir))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var want []string
			for _, f := range tt.wantFiles {
				want = append(want, filepath.Join(dir, f))
			}
			if !reflect.DeepEqual(files, want) {
				t.Errorf("files = %v, want %v", files, want)
			}
		})
	}
}

func TestBatchSynthesizeOverwrites(t *testing.T) {
	dir := t.TempDir()
	batch := NewBatch(&stubBackend{})

	for i := 0; i < 2; i++ {
		if _, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Same. Text.", "again", WithOutputDir(dir)); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
	}

	if got := listDir(t, dir); len(got) != 2 {
		t.Errorf("expected 2 files after two identical runs, got %v", got)
	}
}

func TestBatchSynthesizeCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "target_calibration", "nested")
	batch := NewBatch(&stubBackend{})

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Calibration started.", "start",
		WithSentences(false), WithOutputDir(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(files[0]); err != nil {
		t.Errorf("expected clip in created directory: %v", err)
	}
}

func TestBatchSynthesizeWithoutOutputDir(t *testing.T) {
	batch := NewBatch(&stubBackend{})
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Hi", "cwd", WithSentences(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if files[0] != "en-US-Wavenet-C_cwd.wav" {
		t.Errorf("file = %q, want bare file name", files[0])
	}
	if _, err := os.Stat(filepath.Join(dir, files[0])); err != nil {
		t.Errorf("expected clip in working directory: %v", err)
	}
}

func TestBatchSynthesizeErrorAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	quota := errors.New("quota exceeded")
	backend := &stubBackend{failAt: 2, err: quota}
	batch := NewBatch(backend)

	files, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "One. Two. Three.", "fail", WithOutputDir(dir))
	if !errors.Is(err, quota) {
		t.Fatalf("expected quota error to propagate, got %v", err)
	}

	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected *SynthesisError, got %T", err)
	}
	if synthErr.Index != 2 {
		t.Errorf("failing index = %d, want 2", synthErr.Index)
	}

	if len(backend.calls) != 2 {
		t.Errorf("expected batch to stop after the failing call, got %d calls", len(backend.calls))
	}
	want := []string{filepath.Join(dir, "en-US-Wavenet-C_fail_1.wav")}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("files = %v, want %v", files, want)
	}
	if got := listDir(t, dir); len(got) != 1 {
		t.Errorf("expected earlier clip to stay on disk, got %v", got)
	}
}

func TestBatchSynthesizeOutputDirCollision(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "clips")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}

	backend := &stubBackend{}
	batch := NewBatch(backend)
	_, err := batch.Synthesize(context.Background(), "en-US-Wavenet-C", "Hi.", "x", WithOutputDir(blocker))
	if err == nil {
		t.Fatal("expected error when output directory is a file")
	}
	if len(backend.calls) != 0 {
		t.Errorf("expected no synthesis calls, got %d", len(backend.calls))
	}
}

func TestBatchSynthesizeEmptyVoice(t *testing.T) {
	batch := NewBatch(&stubBackend{})
	_, err := batch.Synthesize(context.Background(), "", "Hi.", "x")
	if !errors.Is(err, ErrEmptyVoice) {
		t.Errorf("expected ErrEmptyVoice, got %v", err)
	}
}
