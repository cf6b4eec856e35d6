package views

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Home renders the landing page: hero, latest projects, and the PKL photo
// strip.
func Home(cfg SiteConfig, projects []Project, photos []Photo) templ.Component {
	return page(cfg, "", func(b *strings.Builder) {
		b.WriteString(`<section class="hero">`)
		fmt.Fprintf(b, `<p class="kicker">Portfolio PKL</p><h1>%s</h1>`, esc(cfg.Author))
		if cfg.Description != "" {
			fmt.Fprintf(b, `<p class="lede">%s</p>`, esc(cfg.Description))
		}
		b.WriteString(`<a class="button" href="/portofolio/">Lihat Portofolio</a></section>`)

		if len(photos) > 0 {
			b.WriteString(`<section class="photo-strip">`)
			for _, ph := range photos {
				fmt.Fprintf(b, `<img src="%s" alt="%s" loading="lazy"/>`, esc(ph.Src), esc(ph.Alt))
			}
			b.WriteString(`</section>`)
		}

		b.WriteString(`<section id="projects" class="project-grid"><h2>Proyek Terbaru</h2>`)
		if len(projects) == 0 {
			b.WriteString(`<p class="empty">Belum ada proyek.</p>`)
		}
		for _, p := range projects {
			projectCard(b, p)
		}
		b.WriteString(`</section>`)
	})
}

// Portfolio renders the full project listing with category filter pills.
func Portfolio(cfg SiteConfig, projects []Project, activeCategory string, categories []string) templ.Component {
	return page(cfg, "Portofolio", func(b *strings.Builder) {
		b.WriteString(`<h1>Portofolio</h1><div class="filter">`)
		cls := "pill"
		if activeCategory == "" {
			cls = "pill active"
		}
		fmt.Fprintf(b, `<a class="%s" href="/portofolio/">Semua</a>`, cls)
		for _, cat := range categories {
			cls := "pill"
			if cat == activeCategory {
				cls = "pill active"
			}
			fmt.Fprintf(b, `<a class="%s" href="/portofolio/?jenis=%s">%s</a>`, cls, esc(cat), esc(cat))
		}
		b.WriteString(`</div><div class="project-grid">`)
		if len(projects) == 0 {
			b.WriteString(`<p class="empty">Belum ada proyek.</p>`)
		}
		for _, p := range projects {
			projectCard(b, p)
		}
		b.WriteString(`</div>`)
	})
}

// ProjectDetail renders one project's full page.
func ProjectDetail(cfg SiteConfig, p Project) templ.Component {
	return page(cfg, p.Title, func(b *strings.Builder) {
		fmt.Fprintf(b, `<article class="project-detail"><h1>%s</h1>`, esc(p.Title))
		if p.Category != "" {
			fmt.Fprintf(b, `<span class="%s">%s</span>`, BadgeClass(p.Category), esc(p.Category))
		}
		if r := DateRange(p.StartDate, p.EndDate); r != "" {
			fmt.Fprintf(b, `<p class="dates">%s</p>`, esc(r))
		}
		if p.ImageURL != "" {
			fmt.Fprintf(b, `<img class="cover" src="%s" alt="%s"/>`, esc(p.ImageURL), esc(p.Title))
		}
		if len(p.Frameworks) > 0 {
			fmt.Fprintf(b, `<p class="frameworks">%s</p>`, esc(JoinFrameworks(p.Frameworks)))
		}
		b.WriteString(`<div class="description">`)
		var md bytes.Buffer
		renderMarkdown(&md, p.Description)
		b.WriteString(md.String())
		b.WriteString(`</div>`)
		b.WriteString(`<a href="/portofolio/">&larr; Kembali ke portofolio</a></article>`)
	})
}

// Biodata renders the profile page. The body comes from SITE_BIO and is
// rendered with the same markdown dialect as project descriptions.
func Biodata(cfg SiteConfig) templ.Component {
	return page(cfg, "Biodata", func(b *strings.Builder) {
		fmt.Fprintf(b, `<article class="biodata"><h1>%s</h1>`, esc(cfg.Author))
		if cfg.Description != "" {
			fmt.Fprintf(b, `<p class="lede">%s</p>`, esc(cfg.Description))
		}
		b.WriteString(`<section><h2>Tentang Saya</h2>`)
		if cfg.Bio != "" {
			var md bytes.Buffer
			renderMarkdown(&md, cfg.Bio)
			b.WriteString(md.String())
		} else {
			fmt.Fprintf(b, `<p>Siswa PKL di %s.</p>`, esc(cfg.Name))
		}
		b.WriteString(`</section></article>`)
	})
}

// NotFound renders the styled 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return page(cfg, "Halaman tidak ditemukan", func(b *strings.Builder) {
		b.WriteString(`<section class="status-page"><h1>404</h1>` +
			`<p>Halaman yang kamu cari tidak ditemukan.</p>` +
			`<a href="/">Kembali ke beranda</a></section>`)
	})
}

// ServerError renders the styled 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return page(cfg, "Terjadi kesalahan", func(b *strings.Builder) {
		b.WriteString(`<section class="status-page"><h1>500</h1>` +
			`<p>Terjadi kesalahan di server. Coba lagi nanti.</p>` +
			`<a href="/">Kembali ke beranda</a></section>`)
	})
}
