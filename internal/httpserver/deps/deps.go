package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/mw"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metric"
)

// Store is the shared state behind the handlers: usage counters and the
// document saved by the last reload. Implemented by the Redis store; nil
// when Redis is disabled.
type Store interface {
	Ping(ctx context.Context) error
	IncrementHits(ctx context.Context, variant string, labels []string) error
	GetUsageStats(ctx context.Context, variant string) (map[string]int64, error)
	DocumentUpdatedAt(ctx context.Context) (time.Time, error)
	Variants(ctx context.Context) ([]string, error)
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to access admin routes
	AllowedCIDRS  []string           // IPs allowed to access readyz/infra/reload/metrics
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string           // browser origins allowed to fetch sitemaps
	RateLimit     mw.RateLimitConfig // per-IP limit on sitemap routes
	SitemapFile   string             // path to the sitemap file (empty = built-in brands only)
	DefaultOrigin string             // origin used when a request carries none
	MemoryIndex   *index.MemoryIndex // catalog served
	Store         Store              // nil when Redis is disabled
	Metrics       *metric.Metrics    // Prometheus counters
	ReloadTrigger chan struct{}      // channel to trigger a manual sitemap reload (nil if no file)
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
