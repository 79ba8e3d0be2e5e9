package engines

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/cache"
	"github.com/movement-lab/voiceover/internal/tts"
)

// New builds the backend named by engineName ("google", "polly", "mock" or
// an alias), wrapped in the clip cache when config.Cache.Dir is set.
func New(ctx context.Context, engineName string, config Config) (tts.Backend, error) {
	engineType, err := tts.ValidateEngineSelection(engineName, "")
	if err != nil {
		return nil, err
	}

	var backend tts.Backend
	switch engineType {
	case tts.EngineGoogle:
		backend, err = NewGoogleEngine(ctx, config.Google)
	case tts.EnginePolly:
		backend, err = NewPollyEngine(ctx, config.Polly)
	case tts.EngineMock:
		backend = NewMockEngine(config.Mock)
	default:
		err = fmt.Errorf("%w: %s", tts.ErrInvalidEngine, engineType)
	}
	if err != nil {
		return nil, err
	}

	if config.Cache.Dir == "" {
		return backend, nil
	}

	maxSize := config.Cache.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	store, err := cache.NewDiskCache(config.Cache.Dir, int64(maxSize)*1024*1024, config.Cache.CompressionLevel)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	log.Debug("clip cache enabled", "dir", config.Cache.Dir, "max_size_mb", maxSize)
	return NewCachedEngine(backend, store), nil
}
