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

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SitemapFile    string        // path to the sitemap YAML (optional, empty = built-in brands only)
	ReloadInterval time.Duration // interval to reload the sitemap file (default: 1h)
	HitGCInterval  time.Duration // interval to prune stale usage counters (default: 24h)
	DefaultOrigin  string        // origin used when a request carries none (ex: https://brandnewcongress.org)

	// Redis (optional, empty address = disabled)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when redis is enabled
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
	CORSOrigins  []string // origins allowed to fetch /sitemap from a browser ("*" = any)

	RateBurst        int // requests allowed at once per client IP
	RateRefillPerMin int // tokens added per client IP per minute
	RateMaxEntries   int // tracked client IPs before an early sweep
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SIDENAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SIDENAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SIDENAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SIDENAV_PRETTY_LOG", false),

		// Sitemap
		SitemapFile:    getenv("SIDENAV_SITEMAP_FILE", ""),
		ReloadInterval: mustDuration("SIDENAV_RELOAD_INTERVAL", time.Hour),
		HitGCInterval:  mustDuration("SIDENAV_HIT_GC_INTERVAL", 24*time.Hour),
		DefaultOrigin:  getenv("SIDENAV_DEFAULT_ORIGIN", ""),

		// Redis settings
		RedisAddr:             getenv("SIDENAV_REDIS_ADDR", ""),
		RedisUser:             getenv("SIDENAV_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SIDENAV_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SIDENAV_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SIDENAV_REDIS_DB", 0),
		RedisDT:               mustDuration("SIDENAV_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("SIDENAV_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("SIDENAV_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("SIDENAV_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("SIDENAV_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("SIDENAV_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("SIDENAV_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("SIDENAV_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("SIDENAV_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SIDENAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SIDENAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SIDENAV_TRUST_PROXY", true),
		CORSOrigins:  splitAndTrim(getenv("SIDENAV_CORS_ORIGINS", "*")),

		// Rate limiting
		RateBurst:        getenvInt("SIDENAV_RATE_BURST", 30),
		RateRefillPerMin: getenvInt("SIDENAV_RATE_REFILL_PER_MIN", 120),
		RateMaxEntries:   getenvInt("SIDENAV_RATE_MAX_ENTRIES", 10000),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
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

func (c *Config) validate() error {
	if c.RedisEnabled() && c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("SIDENAV_REDIS_PASSWORD is required when SIDENAV_REDIS_PASSWORD_REQUIRED=true")
	}
	if c.ReloadInterval <= 0 {
		return fmt.Errorf("SIDENAV_RELOAD_INTERVAL must be > 0, got %v", c.ReloadInterval)
	}
	if c.HitGCInterval <= 0 {
		return fmt.Errorf("SIDENAV_HIT_GC_INTERVAL must be > 0, got %v", c.HitGCInterval)
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("SIDENAV_REDIS_DB must be >= 0, got %d", c.RedisDB)
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
