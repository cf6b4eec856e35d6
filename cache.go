package pklfolio

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ProjectCache is a small TTL cache over the project store, used only by the
// public pages. Every admin write invalidates it, so anything written is
// visible on the next public read; the TTL just bounds staleness across
// out-of-band database changes.
type ProjectCache struct {
	mu       sync.RWMutex
	projects []Project
	fetched  time.Time
	ttl      time.Duration
	store    ProjectStore
}

// NewProjectCache creates a ProjectCache backed by the given store.
func NewProjectCache(s ProjectStore, ttl time.Duration) *ProjectCache {
	return &ProjectCache{store: s, ttl: ttl}
}

func (c *ProjectCache) valid() bool {
	return c.projects != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ProjectCache) Invalidate() {
	c.mu.Lock()
	c.projects = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached listing after ensuring it is fresh. It
// tries a read lock first; only takes a write lock if a reload is needed.
func (c *ProjectCache) ensureLoaded(ctx context.Context) ([]Project, error) {
	c.mu.RLock()
	if c.valid() {
		projects := c.projects
		c.mu.RUnlock()
		return projects, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.projects, nil
	}
	projects, err := c.store.ListProjects(ctx, ListOptions{})
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []Project{}
	}
	c.projects = projects
	c.fetched = time.Now()
	return c.projects, nil
}

// ListProjects returns all projects, optionally filtered by category.
func (c *ProjectCache) ListProjects(ctx context.Context, category string) ([]Project, error) {
	projects, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return projects, nil
	}
	normalized := normalizeCategory(category)
	var filtered []Project
	for _, p := range projects {
		if normalizeCategory(p.Category) == normalized {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListCategories returns the distinct categories across all projects,
// preserving first-seen order.
func (c *ProjectCache) ListCategories(ctx context.Context) ([]string, error) {
	projects, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, p := range projects {
		cat := normalizeCategory(p.Category)
		if cat == "" {
			continue
		}
		if _, ok := seen[cat]; ok {
			continue
		}
		seen[cat] = struct{}{}
		out = append(out, cat)
	}
	return out, nil
}

// GetProject returns a single project by id from the cache.
func (c *ProjectCache) GetProject(ctx context.Context, id int64) (Project, error) {
	projects, err := c.ensureLoaded(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
