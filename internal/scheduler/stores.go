package scheduler

import "context"

// DocumentStore shares the last good sitemap document between replicas.
type DocumentStore interface {
	SaveDocument(ctx context.Context, raw []byte, variants []string) error
	GetDocument(ctx context.Context) ([]byte, error)
}

// HitStore keeps per-variant counters of active entries.
type HitStore interface {
	HitVariants(ctx context.Context) ([]string, error)
	PruneHits(ctx context.Context, variant string, keep []string) (int, error)
	DeleteHits(ctx context.Context, variant string) error
}
