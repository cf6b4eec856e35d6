package pklfolio

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheServesFromMemory(t *testing.T) {
	store := newFakeStore()
	store.seed(ProjectDraft{Title: "Satu"})
	cache := NewProjectCache(store, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := cache.ListProjects(ctx, ""); err != nil {
			t.Fatalf("ListProjects failed: %v", err)
		}
	}
	if store.listCalls != 1 {
		t.Errorf("store hit %d times, want 1 (cached)", store.listCalls)
	}
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	store := newFakeStore()
	cache := NewProjectCache(store, time.Minute)
	ctx := context.Background()

	if _, err := cache.ListProjects(ctx, ""); err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	store.seed(ProjectDraft{Title: "Baru"})
	cache.Invalidate()

	got, err := cache.ListProjects(ctx, "")
	if err != nil {
		t.Fatalf("ListProjects after invalidate failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Baru" {
		t.Errorf("invalidated cache should see the write, got %+v", got)
	}
	if store.listCalls != 2 {
		t.Errorf("store hit %d times, want 2", store.listCalls)
	}
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	store := newFakeStore()
	cache := NewProjectCache(store, 30*time.Millisecond)
	ctx := context.Background()

	cache.ListProjects(ctx, "")
	time.Sleep(50 * time.Millisecond)
	cache.ListProjects(ctx, "")

	if store.listCalls != 2 {
		t.Errorf("store hit %d times, want 2 (TTL expired)", store.listCalls)
	}
}

func TestCacheCategoryFilter(t *testing.T) {
	store := newFakeStore()
	store.seed(
		ProjectDraft{Title: "A", Category: "Projek"},
		ProjectDraft{Title: "B", Category: "produk"},
		ProjectDraft{Title: "C", Category: "projek"},
	)
	cache := NewProjectCache(store, time.Minute)
	ctx := context.Background()

	// Category matching ignores case and surrounding whitespace.
	got, err := cache.ListProjects(ctx, " PROJEK ")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("filtered count = %d, want 2", len(got))
	}

	all, err := cache.ListProjects(ctx, "")
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("unfiltered count = %d, want 3", len(all))
	}
}

func TestCacheListCategories(t *testing.T) {
	store := newFakeStore()
	store.seed(
		ProjectDraft{Title: "A", Category: "projek"},
		ProjectDraft{Title: "B", Category: "Projek"},
		ProjectDraft{Title: "C", Category: "produk"},
		ProjectDraft{Title: "D"},
	)
	cache := NewProjectCache(store, time.Minute)

	got, err := cache.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("categories = %v, want 2 distinct", got)
	}
	for _, c := range got {
		if c != "projek" && c != "produk" {
			t.Errorf("unexpected category %q", c)
		}
	}
}

func TestCacheGetProjectNotFound(t *testing.T) {
	cache := NewProjectCache(newFakeStore(), time.Minute)

	_, err := cache.GetProject(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCachePropagatesStoreError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("db down")
	cache := NewProjectCache(store, time.Minute)

	if _, err := cache.ListProjects(context.Background(), ""); err == nil {
		t.Fatal("expected store error to propagate")
	}
}
