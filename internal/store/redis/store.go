package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoDocument is returned when no sitemap document has been saved yet
var ErrNoDocument = errors.New("no sitemap document in redis")

// Store handles Redis operations for the shared sitemap document and usage counters
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveDocument stores the raw sitemap document and the names of its variants
func (s *Store) SaveDocument(ctx context.Context, raw []byte, variants []string) error {
	if len(raw) == 0 {
		return errors.New("refusing to save an empty sitemap document")
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyDocument, raw, 0)
	pipe.Set(ctx, KeyDocumentUpdated, time.Now().UTC().Format(time.RFC3339), 0)
	pipe.Del(ctx, KeyVariants)
	if len(variants) > 0 {
		members := make([]interface{}, 0, len(variants))
		for _, v := range variants {
			members = append(members, v)
		}
		pipe.SAdd(ctx, KeyVariants, members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save sitemap document: %w", err)
	}
	return nil
}

// GetDocument retrieves the raw sitemap document
func (s *Store) GetDocument(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, KeyDocument).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to get sitemap document: %w", err)
	}
	return data, nil
}

// DocumentUpdatedAt returns when the document was last saved, zero if never
func (s *Store) DocumentUpdatedAt(ctx context.Context) (time.Time, error) {
	v, err := s.client.Get(ctx, KeyDocumentUpdated).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get document timestamp: %w", err)
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid document timestamp %q: %w", v, err)
	}
	return t, nil
}

// Variants returns the variant names of the saved document
func (s *Store) Variants(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, KeyVariants).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get variant names: %w", err)
	}
	return names, nil
}
