package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := InitSalt(s); err != nil {
		t.Fatalf("init salt: %v", err)
	}
	return s
}

func TestHashIPIsStableAndSalted(t *testing.T) {
	setupTestStore(t)

	a := HashIP("203.0.113.5")
	b := HashIP("203.0.113.5")
	c := HashIP("203.0.113.6")

	if a != b {
		t.Error("same IP should hash to the same value")
	}
	if a == c {
		t.Error("different IPs should hash differently")
	}
	if a == "203.0.113.5" || len(a) != 16 {
		t.Errorf("hash %q should be a 16-char digest, never the raw IP", a)
	}
}

func TestVisitorIDDependsOnUserAgent(t *testing.T) {
	setupTestStore(t)

	same := VisitorID("203.0.113.5", "Mozilla/5.0")
	if same != VisitorID("203.0.113.5", "Mozilla/5.0") {
		t.Error("identical inputs should produce the same visitor id")
	}
	if same == VisitorID("203.0.113.5", "curl/8.0") {
		t.Error("a different user agent should produce a different visitor id")
	}
}

func TestSaveVisitAndGetStats(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	visits := []struct {
		visitor, path string
	}{
		{"visitor-a", "/"},
		{"visitor-a", "/portofolio/"},
		{"visitor-b", "/"},
	}
	for _, v := range visits {
		err := s.SaveVisit(ctx, &Visit{
			VisitorID: v.visitor,
			IPHash:    HashIP("203.0.113.5"),
			Path:      v.path,
			Timestamp: now,
		})
		if err != nil {
			t.Fatalf("SaveVisit failed: %v", err)
		}
	}

	stats, err := s.GetStats(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", stats.TotalViews)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if len(stats.TopPages) == 0 || stats.TopPages[0].Path != "/" || stats.TopPages[0].Views != 2 {
		t.Errorf("TopPages = %+v, want / with 2 views first", stats.TopPages)
	}
}

func TestGetStatsWindowExcludesOutside(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.SaveVisit(ctx, &Visit{VisitorID: "old", IPHash: "x", Path: "/", Timestamp: now.AddDate(0, 0, -40)})
	s.SaveVisit(ctx, &Visit{VisitorID: "new", IPHash: "x", Path: "/", Timestamp: now})

	stats, err := s.GetStats(ctx, now.AddDate(0, 0, -30), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 (old visit outside window)", stats.TotalViews)
	}
}

func TestCleanupOldVisits(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.SaveVisit(ctx, &Visit{VisitorID: "old", IPHash: "x", Path: "/", Timestamp: now.AddDate(-2, 0, 0)})
	s.SaveVisit(ctx, &Visit{VisitorID: "new", IPHash: "x", Path: "/", Timestamp: now})

	if err := s.CleanupOldVisits(365); err != nil {
		t.Fatalf("CleanupOldVisits failed: %v", err)
	}

	stats, err := s.GetStats(ctx, now.AddDate(-3, 0, 0), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 after cleanup", stats.TotalViews)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	missing, err := s.GetSetting("nope")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if missing != "" {
		t.Errorf("missing key = %q, want empty", missing)
	}

	if err := s.SetSetting("k", "v1"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	if err := s.SetSetting("k", "v2"); err != nil {
		t.Fatalf("SetSetting upsert failed: %v", err)
	}
	got, err := s.GetSetting("k")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if got != "v2" {
		t.Errorf("GetSetting = %q, want v2", got)
	}
}

func TestIsBot(t *testing.T) {
	bots := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"facebookexternalhit/1.1",
		"some-crawler/0.1",
	}
	for _, ua := range bots {
		if !IsBot(ua) {
			t.Errorf("IsBot(%q) = false, want true", ua)
		}
	}

	humans := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)",
	}
	for _, ua := range humans {
		if IsBot(ua) {
			t.Errorf("IsBot(%q) = true, want false", ua)
		}
	}
}
