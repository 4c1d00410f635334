package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/metric"
	"github.com/MrSnakeDoc/sidenav/internal/sources/navfile"
)

// SitemapReloader handles periodic reloading of the sitemap file
type SitemapReloader struct {
	loader        *navfile.Loader
	mapper        *navfile.Mapper
	store         DocumentStore // nil when redis is disabled
	index         *index.MemoryIndex
	logger        logger.Logger
	reloads       metric.IncrementalCounter
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewSitemapReloader creates a new sitemap reloader
func NewSitemapReloader(
	sitemapFile string,
	store DocumentStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	reloads metric.IncrementalCounter,
	interval time.Duration,
	manualTrigger chan struct{},
) (*SitemapReloader, error) {
	mapper, err := navfile.NewMapper()
	if err != nil {
		return nil, err
	}
	return &SitemapReloader{
		loader:        navfile.NewLoader(sitemapFile),
		mapper:        mapper,
		store:         store,
		index:         idx,
		logger:        log,
		reloads:       reloads,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}, nil
}

// Start loads the file once and then reloads it on every tick or manual trigger
func (sr *SitemapReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload sitemap", logger.Error(err))
				}
			case <-sr.manualTrigger:
				sr.logger.Info("manual reload triggered")
				if err := sr.Reload(ctx); err != nil {
					sr.logger.Error("failed to reload sitemap", logger.Error(err))
				}
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader. Safe to call more than once.
func (sr *SitemapReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// Reload loads the sitemap file and swaps the served catalog. On any error
// the previous catalog stays in place.
func (sr *SitemapReloader) Reload(ctx context.Context) error {
	sr.logger.Info("reloading sitemap", logger.String("file", sr.loader.Path()))

	doc, raw, err := sr.loader.Load()
	if err != nil {
		sr.count("error")
		return fmt.Errorf("failed to load sitemap: %w", err)
	}

	catalog, err := sr.mapper.MapCatalog(doc)
	if err != nil {
		sr.count("error")
		return fmt.Errorf("failed to map sitemap: %w", err)
	}

	sr.index.Update(catalog, index.SourceFile)
	sr.count("ok")
	sr.logger.Info("sitemap loaded",
		logger.Strings("variants", catalog.Names()),
		logger.String("default", catalog.Selector().Default))

	// Share with other replicas (best effort)
	if sr.store != nil {
		if err := sr.store.SaveDocument(ctx, raw, catalog.Names()); err != nil {
			sr.logger.Warn("failed to save sitemap to redis", logger.Error(err))
		} else {
			sr.logger.Debug("sitemap saved to redis")
		}
	}

	return nil
}

func (sr *SitemapReloader) count(result string) {
	if sr.reloads != nil {
		sr.reloads.Increment(index.SourceFile, result)
	}
}
