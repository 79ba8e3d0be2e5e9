package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Common errors for cache operations
var (
	// ErrItemTooLarge is returned when an item exceeds the cache capacity
	ErrItemTooLarge = errors.New("item too large for cache")
)

// CacheStats holds cache performance metrics
type CacheStats struct {
	Capacity  int64 // Maximum capacity in bytes
	Size      int64 // Current size on disk in bytes
	ItemCount int64 // Number of items in cache

	Hits      int64 // Number of cache hits
	Misses    int64 // Number of cache misses
	Evictions int64 // Number of evictions

	LastAccess time.Time
	LastEvict  time.Time
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// GenerateCacheKey derives a key from everything that determines the audio
// a backend returns. engine identifies the backend and its audio settings.
// Fields are length-prefixed, so no field content can collide with another
// split of the same bytes.
func GenerateCacheKey(engine, voice, languageCode, encoding, text string) string {
	var b strings.Builder
	for _, field := range []string{engine, voice, languageCode, encoding, text} {
		b.WriteString(strconv.Itoa(len(field)))
		b.WriteByte(':')
		b.WriteString(field)
	}
	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:16]) // Use first 16 bytes for shorter keys
}
