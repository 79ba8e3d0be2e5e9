// Package cache provides a persistent disk cache for synthesized clips, so
// re-running a manifest does not pay for audio the service already produced.
// Entries are compressed with zstd and evicted least-recently-used first.
package cache
