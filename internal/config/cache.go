package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache middleware used on the
// public menu.  When Enabled is false or no Redis client is configured,
// caching is disabled.  Methods lists the HTTP methods to cache, TTL the
// lifetime of entries and KeyStrategy which parts of the request make up the
// cache key.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

func loadCacheConfig(get func(string, string) string) CacheConfig {
    return CacheConfig{
        Enabled:      parseBool(get("CACHE_ENABLED", ""), true),
        Methods:      parseMethods(get("CACHE_METHODS", "GET")),
        TTL:          envDur(get, "CACHE_TTL", 5*time.Minute),
        KeyStrategy:  get("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       get("CACHE_PREFIX", "geobites:cache"),
        MaxBodyBytes: envInt(get, "CACHE_MAX_BODY_BYTES", 1048576),
    }
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
