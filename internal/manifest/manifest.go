// Package manifest loads batch manifests: YAML files listing the clips to
// synthesize, one job per clip or sentence group, in the order they run.
//
//	voice: en-US-Wavenet-C
//	output_dir: generated_audio
//	jobs:
//	  - label: avatar_calibration_1
//	    text: Please stand up straight. Keep your arms at your side.
//	  - label: end_calibration_2
//	    sentences: false
//	    text: If you are ready to begin, click the touchpad.
//	  - label: target_calibration_start
//	    sentences: false
//	    dir: target_calibration
//	    text: Calibration started.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/tts"
	"gopkg.in/yaml.v3"
)

// Job is one synthesize call.
type Job struct {
	// Voice overrides the manifest voice.
	Voice string `yaml:"voice,omitempty"`
	Text  string `yaml:"text"`
	Label string `yaml:"label"`

	// Sentences selects sentence mode; nil means true.
	Sentences *bool `yaml:"sentences,omitempty"`

	// Dir is joined onto the manifest output directory unless absolute.
	Dir string `yaml:"dir,omitempty"`
}

// Manifest is a list of jobs sharing defaults.
type Manifest struct {
	Voice     string `yaml:"voice,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Jobs      []Job  `yaml:"jobs"`

	// baseDir anchors relative output directories; the manifest file's
	// directory when loaded from disk.
	baseDir string
}

// Defaults fill in manifest-level values a manifest leaves empty, usually
// from the user's config file.
type Defaults struct {
	Voice string

	// OutputDir is resolved against the current directory, not the
	// manifest's.
	OutputDir string
}

func (m *Manifest) applyDefaults(d Defaults) error {
	if m.Voice == "" {
		m.Voice = d.Voice
	}
	if m.OutputDir == "" && d.OutputDir != "" {
		dir, err := filepath.Abs(d.OutputDir)
		if err != nil {
			return fmt.Errorf("unable to resolve default output directory: %w", err)
		}
		m.OutputDir = dir
	}
	return nil
}

// Load reads and validates the manifest at path.
func Load(path string, defaults Defaults) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}
	m, err := Parse(bytes.NewReader(b), defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.baseDir = filepath.Dir(path)
	return m, nil
}

// Parse decodes a manifest, fills in defaults and validates it. Unknown
// keys are rejected so typos like "sentence:" do not silently fall back to
// defaults.
func Parse(r io.Reader, defaults Defaults) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("manifest is empty")
		}
		return nil, fmt.Errorf("unable to parse manifest: %w", err)
	}
	if err := m.applyDefaults(defaults); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every job resolves to a voice. Labels are used
// verbatim, empty ones included. Voices whose language prefix is not a
// BCP 47 tag are only logged.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return errors.New("manifest has no jobs")
	}

	var errs []error
	for i, job := range m.Jobs {
		voice := m.voiceFor(job)
		if voice == "" {
			errs = append(errs, fmt.Errorf("job %d (%q): %w", i+1, job.Label, tts.ErrEmptyVoice))
		} else if err := tts.ValidateVoice(voice); err != nil {
			log.Warn("unusual voice name", "job", i+1, "error", err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manifest) voiceFor(job Job) string {
	if job.Voice != "" {
		return job.Voice
	}
	return m.Voice
}

// OutputDirFor returns where a job's clips are written; "" means the
// current directory.
func (m *Manifest) OutputDirFor(job Job) string {
	dir := m.OutputDir
	if job.Dir != "" {
		if filepath.IsAbs(job.Dir) {
			return job.Dir
		}
		dir = filepath.Join(dir, job.Dir)
	}
	if dir == "" {
		return m.baseDir
	}
	if filepath.IsAbs(dir) || m.baseDir == "" {
		return dir
	}
	return filepath.Join(m.baseDir, dir)
}

// Run submits every job to synth in order and returns all files written.
// The first error stops the run; files written before it are returned too.
func (m *Manifest) Run(ctx context.Context, synth tts.Synthesizer) ([]string, error) {
	var written []string
	for i, job := range m.Jobs {
		sentences := true
		if job.Sentences != nil {
			sentences = *job.Sentences
		}

		opts := []tts.Option{tts.WithSentences(sentences)}
		if dir := m.OutputDirFor(job); dir != "" {
			opts = append(opts, tts.WithOutputDir(dir))
		}

		log.Debug("running job", "job", i+1, "label", job.Label, "sentences", sentences)
		files, err := synth.Synthesize(ctx, m.voiceFor(job), job.Text, job.Label, opts...)
		written = append(written, files...)
		if err != nil {
			return written, fmt.Errorf("job %d (%q): %w", i+1, job.Label, err)
		}
	}
	return written, nil
}
