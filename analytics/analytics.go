// Package analytics records page views without storing personal data. IPs
// are hashed with a per-installation salt before they touch disk.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by
// sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing. Must be
// called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// Visit is a single recorded page view.
type Visit struct {
	ID        int64
	VisitorID string
	IPHash    string
	Path      string
	Referrer  string
	Timestamp time.Time
}

// Stats holds the aggregates shown on the admin dashboard.
type Stats struct {
	Period         string     `json:"period"`
	TotalViews     int        `json:"total_views"`
	UniqueVisitors int        `json:"unique_visitors"`
	TopPages       []PageStat `json:"top_pages"`
}

// PageStat is one row of the top-pages breakdown.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// VisitorID creates a salted fingerprint from IP and User-Agent. Two requests
// from the same browser collapse to one visitor without storing either input.
func VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// IsBot reports whether the User-Agent is likely a crawler. Bot traffic is
// dropped rather than counted.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	markers := []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"facebookexternalhit", "yandex", "baidu",
	}
	for _, m := range markers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}
