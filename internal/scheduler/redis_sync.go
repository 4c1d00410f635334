package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/sources/navfile"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
)

// RedisSyncer loads the shared sitemap document from Redis into the memory index
type RedisSyncer struct {
	store  DocumentStore
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store DocumentStore,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync replaces the served catalog with the one stored in Redis, if any
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing sitemap from redis to memory")

	raw, err := rs.store.GetDocument(ctx)
	if errors.Is(err, redisstore.ErrNoDocument) {
		rs.logger.Info("no sitemap found in redis")
		return nil
	}
	if err != nil {
		return err
	}

	doc, err := navfile.Parse(raw)
	if err != nil {
		return fmt.Errorf("stored sitemap: %w", err)
	}
	mapper, err := navfile.NewMapper()
	if err != nil {
		return err
	}
	catalog, err := mapper.MapCatalog(doc)
	if err != nil {
		return fmt.Errorf("stored sitemap: %w", err)
	}

	rs.index.Update(catalog, index.SourceRedis)

	rs.logger.Info("synced sitemap from redis",
		logger.Int("variants", catalog.Len()))

	return nil
}
