package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request handler timeout

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ImportFile     string        // optional history YAML, empty = import disabled
	ReloadInterval time.Duration // interval to reload the import file (default: 1h)
	GCInterval     time.Duration // interval to run garbage collection (default: 24h)
	GCThreshold    time.Duration // how long a removed record is kept (default: 30 days)

	SearchEngine string // default web search template, %s is the query

	CORSOrigins     []string // allowed Origin values, empty = "*"
	RateLimitBurst  int      // writes allowed in a burst per client IP
	RateLimitPerMin int      // sustained writes per minute per client IP

	// Redis (optional, empty address = in-memory only)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict admin routes to specific Host headers
	AllowedCIDRS []string // optional, restrict admin routes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("QRHIST_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("QRHIST_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("QRHIST_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("QRHIST_LOG_LEVEL", "info"),
		PrettyLog: mustBool("QRHIST_PRETTY_LOG", false),

		// History import and retention
		ImportFile:     getenv("QRHIST_IMPORT_FILE", ""),
		ReloadInterval: mustDuration("QRHIST_RELOAD_INTERVAL", time.Hour),
		GCInterval:     mustDuration("QRHIST_GC_INTERVAL", 24*time.Hour),
		GCThreshold:    mustDuration("QRHIST_GC_THRESHOLD", 30*24*time.Hour),

		SearchEngine: getenv("QRHIST_SEARCH_ENGINE", "https://www.google.com/search?q=%s"),

		CORSOrigins:     splitAndTrim(getenv("QRHIST_CORS_ORIGINS", "")),
		RateLimitBurst:  getenvInt("QRHIST_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("QRHIST_RATE_LIMIT_PER_MIN", 60),

		// Redis settings
		RedisAddr:             getenv("QRHIST_REDIS_ADDR", ""),
		RedisUser:             getenv("QRHIST_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("QRHIST_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("QRHIST_REDIS_PASSWORD", ""),
		RedisDT:               mustDuration("QRHIST_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("QRHIST_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("QRHIST_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("QRHIST_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("QRHIST_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("QRHIST_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("QRHIST_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("QRHIST_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("QRHIST_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("QRHIST_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("QRHIST_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("QRHIST_TRUST_PROXY", false),
	}

	if cfg.RedisAddr != "" {
		cfg.RedisDB = requireEnvInt("QRHIST_REDIS_DB")

		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: QRHIST_REDIS_PASSWORD is required when QRHIST_REDIS_PASSWORD_REQUIRED=true")
		}
	}

	if !strings.Contains(cfg.SearchEngine, "%s") {
		panic(fmt.Sprintf("❌ FATAL: QRHIST_SEARCH_ENGINE must contain %%s, got %q", cfg.SearchEngine))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// RedisEnabled reports whether a Redis mirror is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
