package views

import (
	"context"
	"encoding/json"
	"html"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"
)

// component wraps an HTML-building function as a templ.Component.
func component(fn func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// esc escapes text for safe interpolation into HTML.
func esc(s string) string {
	return html.EscapeString(s)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// BadgeClass returns CSS classes for a category badge. The category set is
// open in the data layer; unknown values get the fallback style.
func BadgeClass(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "pembelajaran":
		return "badge badge-amber"
	case "produk":
		return "badge badge-violet"
	case "projek", "project":
		return "badge badge-sky"
	default:
		return "badge badge-emerald"
	}
}

// DateRange formats a start/end date pair for display. An absent end date
// reads as ongoing.
func DateRange(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " — sekarang"
	case start == "":
		return end
	default:
		return start + " — " + end
	}
}

// JoinFrameworks formats framework names as a comma-separated string.
func JoinFrameworks(fws []Framework) string {
	names := make([]string, 0, len(fws))
	for _, f := range fws {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
