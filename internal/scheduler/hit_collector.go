package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
)

// HitCollector removes usage counters of entries that are no longer in the
// served catalog (renamed labels, removed variants).
type HitCollector struct {
	store    HitStore
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHitCollector creates a new hit collector
func NewHitCollector(
	store HitStore,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *HitCollector {
	return &HitCollector{
		store:    store,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection
func (hc *HitCollector) Start(ctx context.Context) error {
	if err := hc.Collect(ctx); err != nil {
		hc.logger.Warn("initial hit collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(hc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := hc.Collect(ctx); err != nil {
					hc.logger.Error("hit collection failed", logger.Error(err))
				}
			case <-hc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector. Safe to call more than once.
func (hc *HitCollector) Stop() {
	hc.stopOnce.Do(func() { close(hc.stopCh) })
}

// Collect prunes stale counters and returns nil unless the store cannot be listed
func (hc *HitCollector) Collect(ctx context.Context) error {
	variants, err := hc.store.HitVariants(ctx)
	if err != nil {
		return err
	}

	catalog := hc.index.Catalog()
	pruned, dropped := 0, 0

	for _, name := range variants {
		v, ok := catalog.Variant(name)
		if !ok {
			if err := hc.store.DeleteHits(ctx, name); err != nil {
				hc.logger.Warn("failed to delete hit counters",
					logger.String("variant", name),
					logger.Error(err))
				continue
			}
			dropped++
			continue
		}

		n, err := hc.store.PruneHits(ctx, name, v.Labels())
		if err != nil {
			hc.logger.Warn("failed to prune hit counters",
				logger.String("variant", name),
				logger.Error(err))
			continue
		}
		pruned += n
	}

	if pruned > 0 || dropped > 0 {
		hc.logger.Info("hit collection completed",
			logger.Int("labels_pruned", pruned),
			logger.Int("variants_dropped", dropped))
	} else {
		hc.logger.Debug("no hit counters to collect")
	}

	return nil
}
