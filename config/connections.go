package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxDBConns = 10
	redisPingTimeout  = 3 * time.Second
)

// Managed hosts that only accept TLS even when the config does not say so.
var (
	tlsOnlyPostgresHosts = []string{"neon.tech", "supabase.co"}
	tlsOnlyRedisHosts    = []string{"upstash.io"}
)

func hostMatches(host string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.Contains(host, s) {
			return true
		}
	}
	return false
}

// ConfigurePostgresPool builds the pgxpool.Config for the history store. The
// pool is small: one generation writes at most one row.
func ConfigurePostgresPool(cfg *DatabaseConfig) (*pgxpool.Config, error) {
	connStr := cfg.URL()
	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	switch cfg.SSLMode {
	case "require", "verify-ca", "verify-full":
		poolCfg.ConnConfig.TLSConfig = postgresTLS(cfg.Host)
	default:
		if hostMatches(cfg.Host, tlsOnlyPostgresHosts) {
			poolCfg.ConnConfig.TLSConfig = postgresTLS(cfg.Host)
		}
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = defaultMaxDBConns
	}
	poolCfg.MaxConns = int32(min(maxConns, math.MaxInt32))
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	logger.GetLogger().Infow("Configured history database pool",
		"dsn", logger.MaskConnectionString(connStr),
		"maxConns", poolCfg.MaxConns,
		"tls", poolCfg.ConnConfig.TLSConfig != nil)
	return poolCfg, nil
}

func postgresTLS(host string) *tls.Config {
	return &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}
}

// ConfigureRedisOptions creates redis.Options shared by the task store, photo
// cache and rate limiter.
func ConfigureRedisOptions(cfg *RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:            cfg.Address,
		Password:        cfg.Password,
		DB:              cfg.DB,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		ConnMaxLifetime: time.Hour,
		MaxRetries:      3,
		MinRetryBackoff: 100 * time.Millisecond,
		MaxRetryBackoff: 2 * time.Second,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
	}
	if cfg.UseTLS || hostMatches(cfg.Address, tlsOnlyRedisHosts) {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	logger.GetLogger().Infow("Configured Redis client",
		"address", cfg.Address,
		"db", cfg.DB,
		"poolSize", cfg.PoolSize,
		"tls", opts.TLSConfig != nil)
	return opts
}

// WaitForRedis pings Redis up to attempts times, sleeping delay between
// tries. It gives up early when ctx ends.
func WaitForRedis(ctx context.Context, client redis.Cmdable, attempts int, delay time.Duration) error {
	log := logger.GetLogger()
	attempts = max(attempts, 1)

	var err error
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err == nil {
			if attempt > 1 {
				log.Infow("Redis reachable", "attempt", attempt)
			}
			return nil
		}
		if attempt == attempts {
			return fmt.Errorf("redis unreachable after %d attempts: %w", attempts, err)
		}

		log.Warnw("Redis ping failed, retrying", "error", err, "attempt", attempt, "maxAttempts", attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
