package pklfolio

import (
	"testing"
	"time"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"http://example.com", nil, "http://example.com"},
		{"http://example.com", []string{"portofolio"}, "http://example.com/portofolio/"},
		{"http://example.com", []string{"portofolio", "7"}, "http://example.com/portofolio/7/"},
		{"http://example.com/base", []string{"biodata"}, "http://example.com/base/biodata/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	// Empty and whitespace-only inputs are an absent date, not an error.
	for _, in := range []string{"", "   "} {
		got, err := ParseDate(in)
		if err != nil || got != nil {
			t.Errorf("ParseDate(%q) = %v, %v; want nil, nil", in, got, err)
		}
	}

	for _, in := range []string{"15-03-2024", "2024/03/15", "yesterday"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(nil); got != "" {
		t.Errorf("FormatDate(nil) = %q, want empty", got)
	}
	d := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(&d); got != "2024-03-15" {
		t.Errorf("FormatDate = %q, want 2024-03-15", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"", " a ", "  ", "b", ""})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v", got)
	}
}

func TestParseFrameworkList(t *testing.T) {
	got := ParseFrameworkList("Next.js, Flutter ,,Laravel")
	if len(got) != 3 {
		t.Fatalf("count = %d, want 3: %v", len(got), got)
	}
	want := []string{"Next.js", "Flutter", "Laravel"}
	for i, w := range want {
		if got[i].Name != w {
			t.Errorf("[%d] = %q, want %q", i, got[i].Name, w)
		}
		if got[i].LogoURL != "" {
			t.Errorf("[%d] form entries never carry a logo URL", i)
		}
	}

	if got := ParseFrameworkList(" , ,"); got != nil {
		t.Errorf("blank input = %v, want nil", got)
	}
}
