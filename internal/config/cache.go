package config

import "time"

// CacheConfig defines settings for the feed cache middleware. Only the
// public post listing is cached; a short TTL keeps the feed reasonably
// fresh while absorbing read bursts.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment, defaulting to a
// 30 second TTL.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
