package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/movement-lab/voiceover/internal/pcm"
)

// pollInterval is how often playback progress is checked.
const pollInterval = 20 * time.Millisecond

// Player plays 16-bit PCM clips of one format. oto allows a single context
// per process, so a Player is created once with the format of the first
// clip and clips in any other format are rejected.
type Player struct {
	context *oto.Context
	format  pcm.Format
}

// NewPlayer opens the audio device for format.
func NewPlayer(format pcm.Format) (*Player, error) {
	if err := validateFormat(format); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	return &Player{context: ctx, format: format}, nil
}

func validateFormat(format pcm.Format) error {
	if format.Channels != 1 && format.Channels != 2 {
		return fmt.Errorf("channels must be 1 (mono) or 2 (stereo), got %d", format.Channels)
	}
	if format.BitDepth != 16 {
		return fmt.Errorf("bit depth must be 16, got %d", format.BitDepth)
	}
	if format.SampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}
	return nil
}

// Play plays PCM data and blocks until it finishes or ctx is done.
func (p *Player) Play(ctx context.Context, data []byte) error {
	player := p.context.NewPlayer(bytes.NewReader(data))
	defer player.Close() //nolint:errcheck

	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// Format returns the format the device was opened with.
func (p *Player) Format() pcm.Format {
	return p.format
}

// PlaySequentially plays WAV files one after another. It stops at the first
// error or when ctx is done. Clips whose format differs from the player's
// are skipped with a warning.
func PlaySequentially(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no clips to play")
	}

	var player *Player
	for _, path := range paths {
		wav, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read clip: %w", err)
		}
		format, data, err := pcm.DecodeWAV(wav)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if player == nil {
			if player, err = NewPlayer(format); err != nil {
				return err
			}
		}
		if format != player.Format() {
			log.Warn("skipping clip with different format", "file", path, "format", format, "player", player.Format())
			continue
		}

		log.Info("Playing", "file", path, "duration", format.Duration(len(data)))
		if err := player.Play(ctx, data); err != nil {
			return err
		}
	}
	return nil
}
