package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Batch turns blocks of text into WAV clips by delegating each unit of text
// to a Backend and writing the returned bytes under a deterministic name.
// Calls are strictly sequential: one synthesis call, one file write.
type Batch struct {
	backend  Backend
	encoding AudioEncoding
}

// NewBatch creates a Batch that synthesizes through backend.
func NewBatch(backend Backend) *Batch {
	return &Batch{
		backend:  backend,
		encoding: EncodingLinear16,
	}
}

// Option configures a single Synthesize call.
type Option func(*options)

type options struct {
	sentences bool
	outputDir string
}

// WithSentences selects sentence mode (true, the default) or single-shot
// mode (false).
func WithSentences(sentences bool) Option {
	return func(o *options) {
		o.sentences = sentences
	}
}

// WithOutputDir writes clips under dir, creating it if needed. Without it
// clips are written relative to the current directory.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.outputDir = dir
	}
}

func (o options) path(name string) string {
	if o.outputDir == "" {
		return name
	}
	return filepath.Join(o.outputDir, name)
}

// Synthesize produces one or more clips for text spoken by voiceName and
// returns the paths written, in order.
//
// In sentence mode text is split on '.', and every part that is not blank
// becomes "{voice}_{label}_{n}.wav", n being the part's 1-based position
// among all parts. Blank parts use up their n without producing a file. In
// single-shot mode the whole text becomes "{voice}_{label}.wav".
//
// The first error aborts the batch. Files already written stay on disk and
// are returned alongside the error.
func (b *Batch) Synthesize(ctx context.Context, voiceName, text, label string, opts ...Option) ([]string, error) {
	if voiceName == "" {
		return nil, ErrEmptyVoice
	}

	o := options{sentences: true}
	for _, opt := range opts {
		opt(&o)
	}

	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0o755); err != nil { //nolint:gosec
			return nil, fmt.Errorf("unable to create output directory: %w", err)
		}
	}

	voice := NewVoiceSelection(voiceName)

	if !o.sentences {
		name := o.path(FileName(voiceName, label, 0))
		if err := b.synthesizeTo(ctx, Request{Voice: voice, Text: text}, name); err != nil {
			return nil, &SynthesisError{File: name, Err: err}
		}
		return []string{name}, nil
	}

	var written []string
	for _, seg := range SplitSentences(text) {
		if seg.Blank() {
			log.Debug("skipping blank sentence", "label", label, "index", seg.Index+1)
			continue
		}
		name := o.path(FileName(voiceName, label, seg.Index+1))
		if err := b.synthesizeTo(ctx, Request{Voice: voice, Text: seg.Text}, name); err != nil {
			return written, &SynthesisError{Index: seg.Index + 1, File: name, Err: err}
		}
		written = append(written, name)
	}
	return written, nil
}

// synthesizeTo performs one synthesis call and writes its artifact.
func (b *Batch) synthesizeTo(ctx context.Context, req Request, name string) error {
	audio, err := b.backend.Synthesize(ctx, req.Text, req.Voice, b.encoding)
	if err != nil {
		return err
	}

	artifact := Artifact{Filename: name, Bytes: audio}
	if err := os.WriteFile(artifact.Filename, artifact.Bytes, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write audio file: %w", err)
	}

	log.Info("Generated speech saved",
		"file", artifact.Filename,
		"size", humanize.Bytes(uint64(len(artifact.Bytes))), //nolint:gosec
		"engine", b.backend.Name())
	return nil
}
