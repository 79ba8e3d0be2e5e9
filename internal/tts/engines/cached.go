package engines

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/movement-lab/voiceover/internal/cache"
	"github.com/movement-lab/voiceover/internal/tts"
)

// CachedEngine wraps a backend with the disk clip cache. A hit returns the
// stored bytes without calling the backend; the bytes are identical to the
// original response, so files written from a hit match a fresh synthesis.
type CachedEngine struct {
	next  tts.Backend
	store *cache.DiskCache
}

// settingsKeyer is implemented by backends whose configuration changes the
// audio they return for the same request.
type settingsKeyer interface {
	CacheKey() string
}

// cacheIdentity names a backend together with its audio settings.
func cacheIdentity(b tts.Backend) string {
	if k, ok := b.(settingsKeyer); ok {
		return k.CacheKey()
	}
	return b.Name()
}

// NewCachedEngine wraps next with store.
func NewCachedEngine(next tts.Backend, store *cache.DiskCache) *CachedEngine {
	return &CachedEngine{next: next, store: store}
}

// Synthesize serves from the cache or delegates and stores the result.
func (c *CachedEngine) Synthesize(ctx context.Context, text string, voice tts.VoiceSelection, enc tts.AudioEncoding) ([]byte, error) {
	key := cache.GenerateCacheKey(cacheIdentity(c.next), voice.Name, voice.LanguageCode, string(enc), text)
	if audio, ok := c.store.Get(key); ok {
		log.Debug("clip cache hit", "voice", voice.Name, "key", key)
		return audio, nil
	}

	audio, err := c.next.Synthesize(ctx, text, voice, enc)
	if err != nil {
		return nil, err
	}

	// Cache errors are non-fatal
	if err := c.store.Put(key, audio); err != nil {
		log.Warn("unable to cache clip", "key", key, "error", err)
	}
	return audio, nil
}

// Name returns the wrapped engine's name.
func (c *CachedEngine) Name() string {
	return c.next.Name()
}

// Close closes the wrapped engine and saves the cache index.
func (c *CachedEngine) Close() error {
	err := c.next.Close()
	if cerr := c.store.Close(); err == nil {
		err = cerr
	}
	return err
}
