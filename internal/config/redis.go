package config

// Redis backs the rate limiter and the menu response cache.  Both degrade to
// pass-through when the client is nil, so a missing Redis never stops the API.

import (
    "context"
    "crypto/tls"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings.
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand (host/port win when both are set)
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS when "true" or "1"
type RedisConfig struct {
    Enabled  bool
    Addr     string
    Password string
    DB       int
    TLS      bool
}

func loadRedisConfig(get func(string, string) string) RedisConfig {
    addr := get("REDIS_ADDR", "localhost:6379")
    if host, port := get("REDIS_HOST", ""), get("REDIS_PORT", ""); host != "" && port != "" {
        addr = host + ":" + port
    }
    return RedisConfig{
        Enabled:  parseBool(get("REDIS_ENABLED", ""), true),
        Addr:     addr,
        Password: get("REDIS_PASSWORD", ""),
        DB:       envInt(get, "REDIS_DB", 0),
        TLS:      parseBool(get("REDIS_TLS", ""), false),
    }
}

// NewRedisClient instantiates a Redis client and pings it with a short
// timeout.  The returned client is nil when Redis is disabled or unreachable.
func NewRedisClient(rc RedisConfig) *redis.Client {
    if !rc.Enabled {
        return nil
    }
    var tlsConf *tls.Config
    if rc.TLS {
        tlsConf = &tls.Config{InsecureSkipVerify: true}
    }
    client := redis.NewClient(&redis.Options{
        Addr:      rc.Addr,
        Password:  rc.Password,
        DB:        rc.DB,
        TLSConfig: tlsConf,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
