// Package pklfolio is an internship portfolio site built with Go, Echo, and
// templ. Public pages show the projects; a session-gated admin area manages
// them. Records live in Postgres, uploaded images in object storage.
package pklfolio

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nafzev/pklfolio/analytics"
	"github.com/nafzev/pklfolio/views"
)

// App wires together the store, cache, blob storage, handlers, and
// middleware.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  ProjectStore
	Cache  *ProjectCache
	Blobs  BlobStore

	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)

	// ownStore is set when Start opened the Postgres pool itself, so Close
	// knows to release it.
	ownStore *Store
}

// New creates an App with the given configuration. Options can substitute
// the store or blob store, mainly for tests.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes every dependency and runs the server. It blocks until
// the server stops.
func (a *App) Start() error {
	ctx := context.Background()

	if err := a.Config.validate(); err != nil {
		return err
	}

	if a.Store == nil {
		store, err := NewStore(ctx, a.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("pklfolio: init store: %w", err)
		}
		a.Store = store
		a.ownStore = store
	}

	if a.Blobs == nil {
		blobs, err := a.newBlobStore(ctx)
		if err != nil {
			return fmt.Errorf("pklfolio: init blob store: %w", err)
		}
		a.Blobs = blobs
	}

	a.Cache = NewProjectCache(a.Store, a.Config.ProjectCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("pklfolio: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("pklfolio: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newBlobStore picks local or S3 storage from the config. An empty bucket
// means images stay on disk next to the static assets.
func (a *App) newBlobStore(ctx context.Context) (BlobStore, error) {
	if a.Config.StorageBucket == "" {
		return NewLocalBlobStore(a.Config.StaticDir)
	}
	return NewS3BlobStore(ctx, a.Config)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Public pages.
	pub := e.Group("", a.recordVisit)
	pub.GET("/", a.handleHome)
	pub.GET("/portofolio/", a.handlePortfolio)
	pub.GET("/portofolio/:id/", a.handleProjectDetail)
	pub.GET("/biodata/", a.handleBiodata)

	// Admin area. The gate runs on the whole group so every route added
	// here, now or later, requires the session.
	admin := e.Group("/admin", a.adminGate)
	admin.GET("/", a.handleAdminIndex)
	admin.GET("/login/", a.handleAdminLoginForm)
	admin.POST("/login/", a.handleAdminLogin)
	admin.POST("/logout/", a.handleAdminLogout)
	admin.GET("/dashboard-admin/", a.handleAdminDashboard)
	admin.GET("/portofolio-admin/", a.handleAdminProjects)
	admin.GET("/portofolio-admin/create/", a.handleAdminCreateForm)
	admin.POST("/portofolio-admin/create/", a.handleAdminCreate)
	admin.GET("/portofolio-admin/:id/detail/", a.handleAdminDetail)
	admin.GET("/portofolio-admin/:id/edit/", a.handleAdminEditForm)
	admin.POST("/portofolio-admin/:id/edit/", a.handleAdminEdit)
	admin.GET("/portofolio-admin/:id/delete/", a.handleAdminDeleteConfirm)
	admin.POST("/portofolio-admin/:id/delete/", a.handleAdminDelete)

	// JSON API. Reads are public, writes go through the gate.
	e.GET("/api/projects", a.handleAPIProjects)
	e.POST("/api/projects", a.handleAPICreateProject, a.adminGate)
}

// recordVisit logs a page view when analytics is on. Bots are dropped and
// the write happens off the request path.
func (a *App) recordVisit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.analyticsStore != nil && c.Request().Method == http.MethodGet {
			ua := c.Request().UserAgent()
			if !analytics.IsBot(ua) {
				v := &analytics.Visit{
					VisitorID: analytics.VisitorID(c.RealIP(), ua),
					IPHash:    analytics.HashIP(c.RealIP()),
					Path:      c.Request().URL.Path,
					Referrer:  c.Request().Referer(),
					Timestamp: time.Now(),
				}
				go func() {
					if err := a.analyticsStore.SaveVisit(context.Background(), v); err != nil {
						a.Echo.Logger.Errorf("record visit: %v", err)
					}
				}()
			}
		}
		return next(c)
	}
}

// visitStats returns the last 30 days of aggregates for the dashboard, or
// nil when analytics is off or failing.
func (a *App) visitStats() *views.VisitStats {
	if a.analyticsStore == nil {
		return nil
	}
	now := time.Now()
	stats, err := a.analyticsStore.GetStats(context.Background(), now.AddDate(0, 0, -30), now)
	if err != nil {
		a.Echo.Logger.Errorf("visit stats: %v", err)
		return nil
	}
	out := &views.VisitStats{
		TotalViews:     stats.TotalViews,
		UniqueVisitors: stats.UniqueVisitors,
	}
	for _, p := range stats.TopPages {
		if strings.HasPrefix(p.Path, "/admin") {
			continue
		}
		out.TopPages = append(out.TopPages, views.PageStat{Path: p.Path, Views: p.Views})
	}
	return out
}

// Close releases the database handles. Call when the app is shutting down.
func (a *App) Close() error {
	if a.ownStore != nil {
		a.ownStore.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}
