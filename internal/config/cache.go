package config

import "time"

// CacheConfig controls the Redis response cache in front of the public blog
// endpoints. Only GET responses are cached; the key is derived from the
// matched route plus the raw query string, so every search/page combination
// gets its own entry.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads cache settings from environment variables, falling
// back to defaults that suit a mostly-read blog.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
