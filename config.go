package pklfolio

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a pklfolio site.
type Config struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags
	Author      string // Owner name shown on the public pages
	Bio         string // Biodata page content, markdown allowed

	Addr        string // Listen address (default ":3000")
	DatabaseURL string // Required: Postgres connection string

	AdminEmail    string // Admin login email (default "admin@localhost")
	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// Object storage for uploaded project images. When Bucket is empty the
	// app falls back to local files under <StaticDir>/uploads.
	StorageBucket    string // S3 bucket name (the original used "dokum")
	StorageRegion    string
	StorageEndpoint  string // Optional, for S3-compatible hosts
	StorageAccessKey string
	StorageSecretKey string
	StorageBaseURL   string // Public base URL objects resolve under

	StaticDir string // Directory for static assets (default "public")

	AnalyticsEnabled      bool   // Record page views (default off)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	ProjectCacheTTL time.Duration // Public listing cache TTL (default 1min)
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.AdminEmail == "" {
		c.AdminEmail = "admin@localhost"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.ProjectCacheTTL == 0 {
		c.ProjectCacheTTL = time.Minute
	}
}

// validate reports the first missing required setting. Missing configuration
// is fatal at startup; at request time the admin gate fails closed instead.
func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("pklfolio: DatabaseURL is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("pklfolio: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("pklfolio: SessionSecret is required")
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables. A .env file is
// loaded first when present, so local development matches production.
func ConfigFromEnv() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := Config{
		Name:        EnvOr("SITE_NAME", ""),
		URL:         strings.TrimSuffix(os.Getenv("SITE_URL"), "/"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),
		Bio:         os.Getenv("SITE_BIO"),

		Addr:        EnvOr("ADDR", ""),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),

		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		StorageRegion:    EnvOr("STORAGE_REGION", "us-east-1"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		StorageBaseURL:   os.Getenv("STORAGE_BASE_URL"),

		StaticDir:             os.Getenv("STATIC_DIR"),
		AnalyticsEnabled:      strings.EqualFold(os.Getenv("ANALYTICS_ENABLED"), "true"),
		AnalyticsDatabasePath: os.Getenv("ANALYTICS_DATABASE_PATH"),
	}

	log.Printf("database url: %s", maskSecret(cfg.DatabaseURL))
	log.Printf("storage bucket: %s (key: %s)", cfg.StorageBucket, maskSecret(cfg.StorageAccessKey))

	return cfg
}

// maskSecret keeps enough of a credential to recognize it in logs without
// leaking it.
func maskSecret(s string) string {
	if s == "" {
		return "NOT SET"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "****"
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore substitutes the project store, bypassing the Postgres pool.
func WithStore(s ProjectStore) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithBlobStore substitutes the image blob store.
func WithBlobStore(b BlobStore) Option {
	return func(a *App) {
		a.Blobs = b
	}
}

// WithCustomRoutes registers additional routes on the Echo instance before
// the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
