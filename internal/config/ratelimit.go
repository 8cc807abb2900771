package config

import (
    "strconv"
    "strings"
    "time"
)

// RateLimitConfig drives the Redis token bucket placed in front of the
// login, signup and contact endpoints.
type RateLimitConfig struct {
    Enabled        bool
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
    TTL            time.Duration
    KeyStrategy    string
    Prefix         string
    Debug          bool
}

func loadRateLimitConfig(get func(string, string) string) RateLimitConfig {
    def := RateLimitConfig{
        Enabled:        parseBool(get("RATE_LIMIT_ENABLED", ""), true),
        Capacity:       envInt(get, "RATE_LIMIT_CAPACITY", 20),
        RefillTokens:   envInt(get, "RATE_LIMIT_REFILL_TOKENS", 1),
        RefillInterval: envDur(get, "RATE_LIMIT_REFILL_INTERVAL", 3*time.Second),
        TTL:            envDur(get, "RATE_LIMIT_TTL", 10*time.Minute),
        KeyStrategy:    strings.ToLower(get("RATE_LIMIT_KEY_STRATEGY", "ip_route")),
        Prefix:         get("RATE_LIMIT_PREFIX", "geobites:rl"),
        Debug:          parseBool(get("RATE_LIMIT_DEBUG", ""), false),
    }
    if b := envInt(get, "RATE_LIMIT_BURST", -1); b > 0 { def.Capacity = b }
    if every := envDur(get, "RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
        def.RefillTokens = 1
        def.RefillInterval = every
    }
    if def.Capacity < 1 { def.Capacity = 1 }
    if def.RefillTokens < 1 { def.RefillTokens = 1 }
    if def.RefillInterval <= 0 { def.RefillInterval = time.Second }
    minTTL := 5 * def.RefillInterval
    if def.TTL < minTTL { def.TTL = minTTL }
    return def
}

func envInt(get func(string, string) string, k string, d int) int {
    v := get(k, ""); if v == "" { return d }
    if n, err := strconv.Atoi(v); err == nil { return n }
    return d
}
func envDur(get func(string, string) string, k string, d time.Duration) time.Duration {
    v := get(k, ""); if v == "" { return d }
    if dur, err := time.ParseDuration(v); err == nil { return dur }
    return d
}
