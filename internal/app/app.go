package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/sidenav/internal/config"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/mw"
	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metric"
	"github.com/MrSnakeDoc/sidenav/internal/redis"
	"github.com/MrSnakeDoc/sidenav/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
	"github.com/MrSnakeDoc/sidenav/internal/utils"
	"github.com/MrSnakeDoc/sidenav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client // nil when redis is disabled
	memIndex    *index.MemoryIndex
	metrics     *metric.Metrics
	reloader    *scheduler.SitemapReloader // nil without a sitemap file
	collector   *scheduler.HitCollector    // nil when redis is disabled
}

// New wires every component from the environment configuration.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.PrettyLog,
		Name:   "sidenav",
	})

	memIndex := index.NewMemoryIndex()
	metrics := metric.New()

	a := &App{
		cfg:      cfg,
		logger:   loggerClient,
		memIndex: memIndex,
		metrics:  metrics,
	}

	var shared deps.Store
	var documents scheduler.DocumentStore

	if cfg.RedisEnabled() {
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redisClient = client

		store := redisstore.NewStore(client)
		shared, documents = store, store

		// Serve the document shared by other replicas until the local file is read.
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			metrics.Reloads.Increment(index.SourceRedis, "error")
			loggerClient.Warn("failed to sync sitemap from redis on startup",
				logger.Error(err))
		} else {
			metrics.Reloads.Increment(index.SourceRedis, "ok")
		}

		a.collector = scheduler.NewHitCollector(store, memIndex, loggerClient, cfg.HitGCInterval)
	} else {
		loggerClient.Info("redis not configured, usage tracking disabled")
	}

	var reloadTrigger chan struct{}
	if cfg.SitemapFile != "" {
		reloadTrigger = make(chan struct{}, 1)
		reloader, err := scheduler.NewSitemapReloader(
			cfg.SitemapFile,
			documents,
			memIndex,
			loggerClient,
			metrics.Reloads,
			cfg.ReloadInterval,
			reloadTrigger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create sitemap reloader: %w", err)
		}
		a.reloader = reloader
	} else {
		loggerClient.Info("sitemap file not configured, serving built-in brands")
	}

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateBurst,
			RefillPerIPPerMin: cfg.RateRefillPerMin,
			MaxEntries:        cfg.RateMaxEntries,
			TrustProxy:        cfg.TrustProxy,
		},
		SitemapFile:   cfg.SitemapFile,
		DefaultOrigin: cfg.DefaultOrigin,
		MemoryIndex:   memIndex,
		Store:         shared,
		Metrics:       metrics,
		ReloadTrigger: reloadTrigger,
	}

	a.server = httpserver.New(cfg, loggerClient, d)

	return a, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM is received.
func (a *App) Run(parent context.Context) error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Info("starting sidenav",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("listen", a.cfg.ListenPort))

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start sitemap reloader: %w", err)
		}
		a.logger.Info("sitemap reloader started",
			logger.String("file", a.cfg.SitemapFile),
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start hit collector: %w", err)
		}
		a.logger.Info("hit collector started",
			logger.Duration("interval", a.cfg.HitGCInterval))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down gracefully")

		if a.reloader != nil {
			a.reloader.Stop()
		}
		if a.collector != nil {
			a.collector.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := a.server.Stop(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	err := g.Wait()

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	if err == nil {
		a.logger.Info("sidenav stopped cleanly")
	}
	return err
}
