package config

import (
	"time"
)

// CacheConfig defines settings for the notes list cache. TTL is the
// lifetime of a cached list snapshot; Prefix namespaces every key the
// application writes so several deployments can share one Redis. The
// cache is advisory: when disabled or unreachable every list query goes
// straight to the database.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults match the documented behavior: entries live for five minutes.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     envDur("CACHE_TTL", 300*time.Second),
		Prefix:  getenv("CACHE_PREFIX", "notes"),
	}
}

func envDur(k string, d time.Duration) time.Duration {
	v := getenv(k, "")
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
		return dur
	}
	return d
}
