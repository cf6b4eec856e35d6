package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// page wraps body content in the shared document shell: head metadata,
// public navigation, and footer.
func page(cfg SiteConfig, title string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, cfg, title)
		b.WriteString(`<body><nav class="site-nav">`)
		fmt.Fprintf(b, `<a class="brand" href="/">%s</a>`, esc(cfg.Name))
		b.WriteString(`<div class="nav-links">` +
			`<a href="/">Beranda</a>` +
			`<a href="/portofolio/">Portofolio</a>` +
			`<a href="/biodata/">Biodata</a>` +
			`</div></nav><main>`)
		body(b)
		b.WriteString(`</main><footer class="site-footer">`)
		fmt.Fprintf(b, `<p>&copy; %s</p>`, esc(cfg.Name))
		b.WriteString(`</footer></body></html>`)
	})
}

// adminPage wraps admin content in the dashboard shell with its sidebar.
// No public chrome, no indexing.
func adminPage(cfg SiteConfig, title string, body func(b *strings.Builder)) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, cfg, title)
		b.WriteString(`<body class="admin"><aside class="sidebar">`)
		fmt.Fprintf(b, `<p class="brand">%s</p>`, esc(cfg.Name))
		b.WriteString(`<a href="/admin/dashboard-admin/">Dashboard</a>` +
			`<a href="/admin/portofolio-admin/">Portofolio</a>` +
			`<a href="/admin/portofolio-admin/create/">Tambah Proyek</a>`)
		b.WriteString(`</aside><main class="admin-main">`)
		body(b)
		b.WriteString(`</main></body></html>`)
	})
}

func writeHead(b *strings.Builder, cfg SiteConfig, title string) {
	b.WriteString(`<!DOCTYPE html><html lang="id"><head>` +
		`<meta charset="utf-8"/>` +
		`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	if title == "" {
		fmt.Fprintf(b, `<title>%s</title>`, esc(cfg.Name))
	} else {
		fmt.Fprintf(b, `<title>%s · %s</title>`, esc(title), esc(cfg.Name))
	}
	if cfg.Description != "" {
		fmt.Fprintf(b, `<meta name="description" content="%s"/>`, esc(cfg.Description))
	}
	b.WriteString(`<link rel="icon" href="/favicon.svg" type="image/svg+xml"/>` +
		`<link rel="stylesheet" href="/public/styles.css"/>`)
	fmt.Fprintf(b, `<script type="application/ld+json">%s</script>`, WebsiteJsonLD(cfg))
	b.WriteString(`</head>`)
}

// csrfField renders the hidden CSRF input every form carries.
func csrfField(b *strings.Builder, token string) {
	fmt.Fprintf(b, `<input type="hidden" name="_csrf" value="%s"/>`, esc(token))
}

// projectCard renders one project summary card, shared by the home and
// portfolio listings.
func projectCard(b *strings.Builder, p Project) {
	fmt.Fprintf(b, `<article class="project-card"><a href="/portofolio/%d/">`, p.ID)
	if p.ImageURL != "" {
		fmt.Fprintf(b, `<img src="%s" alt="%s" loading="lazy"/>`, esc(p.ImageURL), esc(p.Title))
	}
	fmt.Fprintf(b, `<h3>%s</h3></a>`, esc(p.Title))
	if p.Category != "" {
		fmt.Fprintf(b, `<span class="%s">%s</span>`, BadgeClass(p.Category), esc(p.Category))
	}
	if r := DateRange(p.StartDate, p.EndDate); r != "" {
		fmt.Fprintf(b, `<p class="dates">%s</p>`, esc(r))
	}
	if len(p.Frameworks) > 0 {
		b.WriteString(`<ul class="frameworks">`)
		for _, f := range p.Frameworks {
			if f.LogoURL != "" {
				fmt.Fprintf(b, `<li><img src="%s" alt=""/>%s</li>`, esc(f.LogoURL), esc(f.Name))
			} else {
				fmt.Fprintf(b, `<li>%s</li>`, esc(f.Name))
			}
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</article>`)
}
