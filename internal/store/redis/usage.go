package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementHits counts every label of an active trail in one round trip
func (s *Store) IncrementHits(ctx context.Context, variant string, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	key := HitsKey(variant)
	for _, label := range labels {
		pipe.HIncrBy(ctx, key, label, 1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment hits: %w", err)
	}
	return nil
}

// GetUsageStats retrieves the active entry counters of a variant
func (s *Store) GetUsageStats(ctx context.Context, variant string) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, HitsKey(variant)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for label, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats[label] = n
	}
	return stats, nil
}

// PruneHits removes the counters of labels not listed in keep and returns
// how many were removed
func (s *Store) PruneHits(ctx context.Context, variant string, keep []string) (int, error) {
	key := HitsKey(variant)
	labels, err := s.client.HKeys(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list hit counters: %w", err)
	}

	stale := StaleLabels(labels, keep)
	if len(stale) == 0 {
		return 0, nil
	}
	if err := s.client.HDel(ctx, key, stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to prune hit counters: %w", err)
	}
	return len(stale), nil
}

// HitVariants lists the variants that have counters
func (s *Store) HitVariants(ctx context.Context) ([]string, error) {
	var variants []string
	iter := s.client.Scan(ctx, 0, KeyPrefixHits+"*", 0).Iterator()
	for iter.Next(ctx) {
		v, err := ExtractVariant(iter.Val())
		if err != nil {
			continue
		}
		variants = append(variants, v)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan hit counters: %w", err)
	}
	return variants, nil
}

// DeleteHits removes every counter of a variant
func (s *Store) DeleteHits(ctx context.Context, variant string) error {
	if err := s.client.Del(ctx, HitsKey(variant)).Err(); err != nil {
		return fmt.Errorf("failed to delete hit counters: %w", err)
	}
	return nil
}

// StaleLabels returns the labels absent from keep, in input order
func StaleLabels(labels, keep []string) []string {
	kept := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		kept[k] = struct{}{}
	}
	var stale []string
	for _, l := range labels {
		if _, ok := kept[l]; !ok {
			stale = append(stale, l)
		}
	}
	return stale
}
