package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/index"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/sitemap"
	redisstore "github.com/MrSnakeDoc/sidenav/internal/store/redis"
)

const testDocument = `default: main
select:
  - marker: alt
    variant: alt
base:
  - label: Home
    path: HOSTNAME
    match: { never: true }
  - label: Docs
    path: HOSTNAME/docs
    match: { contains: [/docs] }
variants:
  main: {}
  alt:
    overrides:
      - target: [Docs]
        path: /alt-docs
`

type fakeDocumentStore struct {
	mu       sync.Mutex
	raw      []byte
	variants []string
	saveErr  error
	getErr   error
	saves    int
}

func (f *fakeDocumentStore) SaveDocument(_ context.Context, raw []byte, variants []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.raw = raw
	f.variants = variants
	return nil
}

func (f *fakeDocumentStore) GetDocument(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.raw == nil {
		return nil, redisstore.ErrNoDocument
	}
	return f.raw, nil
}

type counter struct {
	mu   sync.Mutex
	seen [][]string
}

func (c *counter) Increment(val ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, val)
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitemap.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sitemap: %v", err)
	}
	return path
}

func TestSitemapReloaderReload(t *testing.T) {
	path := writeDocument(t, testDocument)
	store := &fakeDocumentStore{}
	idx := index.NewMemoryIndex()
	reloads := &counter{}

	r, err := NewSitemapReloader(path, store, idx, logger.NewNop(), reloads, time.Hour, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewSitemapReloader() error = %v", err)
	}

	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if idx.Source() != index.SourceFile {
		t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceFile)
	}
	if got := idx.Catalog().Names(); !reflect.DeepEqual(got, []string{"alt", "main"}) {
		t.Errorf("Names() = %v", got)
	}
	if got := idx.Select("https://alt.example.com").Name; got != "alt" {
		t.Errorf("Select(alt) = %s, want alt", got)
	}
	if string(store.raw) != testDocument {
		t.Error("raw document was not saved to the store")
	}
	if !reflect.DeepEqual(store.variants, []string{"alt", "main"}) {
		t.Errorf("saved variants = %v", store.variants)
	}
	if len(reloads.seen) != 1 || !reflect.DeepEqual(reloads.seen[0], []string{index.SourceFile, "ok"}) {
		t.Errorf("reload counter = %v", reloads.seen)
	}
}

func TestSitemapReloaderKeepsCatalogOnError(t *testing.T) {
	path := writeDocument(t, "default: missing\n")
	idx := index.NewMemoryIndex()
	reloads := &counter{}

	r, err := NewSitemapReloader(path, nil, idx, logger.NewNop(), reloads, time.Hour, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewSitemapReloader() error = %v", err)
	}

	if err := r.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should fail on an invalid document")
	}
	if idx.Source() != index.SourceBuiltin {
		t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceBuiltin)
	}
	if len(reloads.seen) != 1 || reloads.seen[0][1] != "error" {
		t.Errorf("reload counter = %v", reloads.seen)
	}
}

func TestSitemapReloaderStoreErrorIsNotFatal(t *testing.T) {
	path := writeDocument(t, testDocument)
	store := &fakeDocumentStore{saveErr: errors.New("redis down")}
	idx := index.NewMemoryIndex()

	r, err := NewSitemapReloader(path, store, idx, logger.NewNop(), nil, time.Hour, make(chan struct{}, 1))
	if err != nil {
		t.Fatalf("NewSitemapReloader() error = %v", err)
	}
	if err := r.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}
	if idx.Source() != index.SourceFile {
		t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceFile)
	}
}

func TestSitemapReloaderManualTrigger(t *testing.T) {
	path := writeDocument(t, testDocument)
	idx := index.NewMemoryIndex()
	reloads := &counter{}
	trigger := make(chan struct{}, 1)

	r, err := NewSitemapReloader(path, nil, idx, logger.NewNop(), reloads, time.Hour, trigger)
	if err != nil {
		t.Fatalf("NewSitemapReloader() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer r.Stop()

	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		reloads.mu.Lock()
		n := len(reloads.seen)
		reloads.mu.Unlock()
		if n >= 2 {
			r.Stop() // second call must not panic
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("manual trigger did not reload the sitemap")
}

func TestSitemapReloaderStartFailsOnMissingFile(t *testing.T) {
	r, err := NewSitemapReloader(filepath.Join(t.TempDir(), "nope.yaml"), nil, index.NewMemoryIndex(), logger.NewNop(), nil, time.Hour, nil)
	if err != nil {
		t.Fatalf("NewSitemapReloader() error = %v", err)
	}
	if err := r.Start(context.Background()); err == nil {
		t.Error("Start() should fail when the file is missing")
	}
}

func TestRedisSyncer(t *testing.T) {
	t.Run("no document", func(t *testing.T) {
		idx := index.NewMemoryIndex()
		s := NewRedisSyncer(&fakeDocumentStore{}, idx, logger.NewNop())
		if err := s.Sync(context.Background()); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if idx.Source() != index.SourceBuiltin {
			t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceBuiltin)
		}
	})

	t.Run("stored document", func(t *testing.T) {
		idx := index.NewMemoryIndex()
		s := NewRedisSyncer(&fakeDocumentStore{raw: []byte(testDocument)}, idx, logger.NewNop())
		if err := s.Sync(context.Background()); err != nil {
			t.Fatalf("Sync() error = %v", err)
		}
		if idx.Source() != index.SourceRedis {
			t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceRedis)
		}
		if idx.Count() != 2 {
			t.Errorf("Count() = %d, want 2", idx.Count())
		}
	})

	t.Run("corrupt document", func(t *testing.T) {
		idx := index.NewMemoryIndex()
		s := NewRedisSyncer(&fakeDocumentStore{raw: []byte("unknown_field: 1\n")}, idx, logger.NewNop())
		if err := s.Sync(context.Background()); err == nil {
			t.Error("Sync() should fail on a corrupt document")
		}
		if idx.Source() != index.SourceBuiltin {
			t.Errorf("Source() = %s, want %s", idx.Source(), index.SourceBuiltin)
		}
	})

	t.Run("store error", func(t *testing.T) {
		s := NewRedisSyncer(&fakeDocumentStore{getErr: errors.New("boom")}, index.NewMemoryIndex(), logger.NewNop())
		if err := s.Sync(context.Background()); err == nil {
			t.Error("Sync() should return the store error")
		}
	})
}

type fakeHitStore struct {
	variants  []string
	listErr   error
	pruned    map[string][]string
	deleted   []string
	pruneRet  int
	deleteErr error
}

func (f *fakeHitStore) HitVariants(context.Context) ([]string, error) {
	return f.variants, f.listErr
}

func (f *fakeHitStore) PruneHits(_ context.Context, variant string, keep []string) (int, error) {
	if f.pruned == nil {
		f.pruned = map[string][]string{}
	}
	f.pruned[variant] = keep
	return f.pruneRet, nil
}

func (f *fakeHitStore) DeleteHits(_ context.Context, variant string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, variant)
	return nil
}

func TestHitCollectorCollect(t *testing.T) {
	store := &fakeHitStore{variants: []string{sitemap.JusticeDemocrats, "retired", sitemap.BrandNewCongress}, pruneRet: 1}
	hc := NewHitCollector(store, index.NewMemoryIndex(), logger.NewNop(), time.Hour)

	if err := hc.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if !reflect.DeepEqual(store.deleted, []string{"retired"}) {
		t.Errorf("deleted = %v, want [retired]", store.deleted)
	}
	var pruned []string
	for name := range store.pruned {
		pruned = append(pruned, name)
	}
	sort.Strings(pruned)
	if !reflect.DeepEqual(pruned, []string{sitemap.BrandNewCongress, sitemap.JusticeDemocrats}) {
		t.Errorf("pruned = %v", pruned)
	}
	if got, want := store.pruned[sitemap.JusticeDemocrats], sitemap.BuildVariant(sitemap.JusticeDemocrats).Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("jd keep = %v, want %v", got, want)
	}
}

func TestHitCollectorErrors(t *testing.T) {
	hc := NewHitCollector(&fakeHitStore{listErr: errors.New("boom")}, index.NewMemoryIndex(), logger.NewNop(), time.Hour)
	if err := hc.Collect(context.Background()); err == nil {
		t.Error("Collect() should fail when variants cannot be listed")
	}

	// A failing delete is logged and skipped.
	hc = NewHitCollector(&fakeHitStore{variants: []string{"retired"}, deleteErr: errors.New("boom")}, index.NewMemoryIndex(), logger.NewNop(), time.Hour)
	if err := hc.Collect(context.Background()); err != nil {
		t.Errorf("Collect() error = %v, want nil", err)
	}
}
