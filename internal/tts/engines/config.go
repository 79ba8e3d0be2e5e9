package engines

// Config holds configuration for every engine. Only the section matching
// the selected engine is read.
type Config struct {
	Google GoogleConfig
	Polly  PollyConfig
	Mock   MockConfig
	Cache  CacheConfig
}

// CacheConfig configures the clip cache. An empty Dir disables it.
type CacheConfig struct {
	Dir              string
	MaxSizeMB        int
	CompressionLevel int
}
