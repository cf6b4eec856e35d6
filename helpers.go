package pklfolio

import (
	"net/url"
	"path"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseDate parses a YYYY-MM-DD form value. Empty input is a valid absent
// date, not an error.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders an optional date as YYYY-MM-DD, or empty.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ParseFrameworkList turns the comma-separated form field into framework
// entries. Only names come from the form; logo URLs are API-only.
func ParseFrameworkList(s string) []Framework {
	var out []Framework
	for _, name := range FilterEmpty(strings.Split(s, ",")) {
		out = append(out, Framework{Name: name})
	}
	return out
}
