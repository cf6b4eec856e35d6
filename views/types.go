package views

// SiteConfig holds site-wide settings populated from environment variables.
// Every handler passes this to templates so nothing is hardcoded.
type SiteConfig struct {
	Name        string // SITE_NAME  (default "Portfolio")
	URL         string // SITE_URL   (default "http://localhost:3000")
	Description string // SITE_DESCRIPTION
	Author      string // SITE_AUTHOR
	Bio         string // SITE_BIO, markdown shown on the biodata page
}

// Framework is one technology badge shown on a project card.
type Framework struct {
	Name    string
	LogoURL string
}

// Project is the view model for one portfolio entry. Dates are already
// formatted and the image reference is already resolved to a fetchable URL
// by the time a template sees it.
type Project struct {
	ID          int64
	Title       string
	Description string
	Category    string
	StartDate   string
	EndDate     string
	Frameworks  []Framework
	ImageURL    string
	CreatedAt   string
}

// Photo is one entry in the home page photo strip.
type Photo struct {
	Src string
	Alt string
}

// VisitStats is the slice of analytics shown on the admin dashboard.
type VisitStats struct {
	TotalViews     int
	UniqueVisitors int
	TopPages       []PageStat
}

// PageStat pairs a path with its view count.
type PageStat struct {
	Path  string
	Views int
}
