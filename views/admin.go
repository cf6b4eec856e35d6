package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// AdminLogin renders the login form. showError toggles the failed-login
// message without revealing which field was wrong.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		writeHead(b, cfg, "Admin Login")
		b.WriteString(`<body class="login"><section class="login-card"><h1>Admin Login</h1>` +
			`<p class="muted">Silahkan login untuk mengakses halaman admin</p>`)
		if showError {
			b.WriteString(`<p class="error">Email atau password salah.</p>`)
		}
		b.WriteString(`<form method="post" action="/admin/login/">`)
		csrfField(b, csrfToken)
		b.WriteString(`<label>Email<input type="email" name="email" required/></label>` +
			`<label>Password<input type="password" name="password" required/></label>` +
			`<button type="submit">Login</button></form></section></body></html>`)
	})
}

// AdminDashboard renders the overview: project count, recent projects, and
// visit stats when analytics is on.
func AdminDashboard(cfg SiteConfig, total int, recent []Project, stats *VisitStats, msg, csrfToken string) templ.Component {
	return adminPage(cfg, "Dashboard Admin", func(b *strings.Builder) {
		b.WriteString(`<h1>Dashboard Admin</h1>`)
		flash(b, msg)
		b.WriteString(`<div class="stat-cards">`)
		fmt.Fprintf(b, `<div class="stat"><h2>Total Proyek</h2><p class="big">%d</p></div>`, total)
		if stats != nil {
			fmt.Fprintf(b, `<div class="stat"><h2>Kunjungan</h2><p class="big">%d</p><p class="muted">%d pengunjung unik</p></div>`,
				stats.TotalViews, stats.UniqueVisitors)
		}
		b.WriteString(`</div><section><h2>Proyek Terbaru</h2><ul class="recent">`)
		for _, p := range recent {
			fmt.Fprintf(b, `<li><a href="/admin/portofolio-admin/%d/detail/">%s</a> <span class="muted">%s</span></li>`,
				p.ID, esc(p.Title), esc(p.CreatedAt))
		}
		if len(recent) == 0 {
			b.WriteString(`<li class="muted">Belum ada proyek.</li>`)
		}
		b.WriteString(`</ul></section>`)
		if stats != nil && len(stats.TopPages) > 0 {
			b.WriteString(`<section><h2>Halaman Terpopuler</h2><table><thead><tr><th>Halaman</th><th>Views</th></tr></thead><tbody>`)
			for _, pg := range stats.TopPages {
				fmt.Fprintf(b, `<tr><td>%s</td><td>%d</td></tr>`, esc(pg.Path), pg.Views)
			}
			b.WriteString(`</tbody></table></section>`)
		}
		logoutForm(b, csrfToken)
	})
}

// AdminProjects renders the manageable project listing.
func AdminProjects(cfg SiteConfig, projects []Project, msg, csrfToken string) templ.Component {
	return adminPage(cfg, "Portofolio Admin", func(b *strings.Builder) {
		b.WriteString(`<h1>Portofolio</h1>`)
		flash(b, msg)
		b.WriteString(`<a class="button" href="/admin/portofolio-admin/create/">Tambah Proyek</a>`)
		b.WriteString(`<table class="project-table"><thead><tr>` +
			`<th>Judul</th><th>Jenis</th><th>Tanggal</th><th></th>` +
			`</tr></thead><tbody>`)
		for _, p := range projects {
			fmt.Fprintf(b, `<tr><td><a href="/admin/portofolio-admin/%d/detail/">%s</a></td>`, p.ID, esc(p.Title))
			fmt.Fprintf(b, `<td><span class="%s">%s</span></td>`, BadgeClass(p.Category), esc(p.Category))
			fmt.Fprintf(b, `<td>%s</td>`, esc(DateRange(p.StartDate, p.EndDate)))
			fmt.Fprintf(b, `<td><a href="/admin/portofolio-admin/%d/edit/">Edit</a> `+
				`<a href="/admin/portofolio-admin/%d/delete/">Hapus</a></td></tr>`, p.ID, p.ID)
		}
		b.WriteString(`</tbody></table>`)
		if len(projects) == 0 {
			b.WriteString(`<p class="muted">Belum ada proyek.</p>`)
		}
		logoutForm(b, csrfToken)
	})
}

// AdminProjectForm renders the create/edit form. For an edit the fields come
// pre-filled and the current image is shown.
func AdminProjectForm(cfg SiteConfig, p Project, isNew bool, msg, csrfToken string) templ.Component {
	title := "Edit Proyek"
	action := fmt.Sprintf("/admin/portofolio-admin/%d/edit/", p.ID)
	if isNew {
		title = "Tambah Proyek Baru"
		action = "/admin/portofolio-admin/create/"
	}
	return adminPage(cfg, title, func(b *strings.Builder) {
		fmt.Fprintf(b, `<h1>%s</h1>`, esc(title))
		flash(b, msg)
		fmt.Fprintf(b, `<form method="post" action="%s" enctype="multipart/form-data">`, esc(action))
		csrfField(b, csrfToken)
		fmt.Fprintf(b, `<label>Judul Proyek<input name="judul" value="%s" required/></label>`, esc(p.Title))
		fmt.Fprintf(b, `<label>Deskripsi<textarea name="deskripsi" rows="6">%s</textarea></label>`, esc(p.Description))
		fmt.Fprintf(b, `<label>Tanggal Mulai<input type="date" name="tanggal_buat" value="%s"/></label>`, esc(p.StartDate))
		fmt.Fprintf(b, `<label>Tanggal Selesai<input type="date" name="tanggal_selesai" value="%s"/></label>`, esc(p.EndDate))
		fmt.Fprintf(b, `<label>Jenis Projek<input name="jenis_projek" value="%s" placeholder="Contoh: projek, produk, pembelajaran"/></label>`, esc(p.Category))
		fmt.Fprintf(b, `<label>Framework<input name="framework" value="%s" placeholder="Contoh: Next.js, Flutter"/></label>`, esc(JoinFrameworks(p.Frameworks)))
		if p.ImageURL != "" {
			fmt.Fprintf(b, `<img class="preview" src="%s" alt="gambar saat ini"/>`, esc(p.ImageURL))
		}
		b.WriteString(`<label>Upload Gambar<input type="file" name="dokum" accept="image/*"/></label>`)
		b.WriteString(`<button type="submit">Simpan Proyek</button></form>`)
		b.WriteString(`<a href="/admin/portofolio-admin/">&larr; Kembali</a>`)
	})
}

// AdminProjectDetail renders the read-only admin view of one project.
func AdminProjectDetail(cfg SiteConfig, p Project, csrfToken string) templ.Component {
	return adminPage(cfg, p.Title, func(b *strings.Builder) {
		fmt.Fprintf(b, `<h1>%s</h1>`, esc(p.Title))
		if p.Category != "" {
			fmt.Fprintf(b, `<span class="%s">%s</span>`, BadgeClass(p.Category), esc(p.Category))
		}
		if r := DateRange(p.StartDate, p.EndDate); r != "" {
			fmt.Fprintf(b, `<p class="dates">%s</p>`, esc(r))
		}
		if p.ImageURL != "" {
			fmt.Fprintf(b, `<img class="cover" src="%s" alt="%s"/>`, esc(p.ImageURL), esc(p.Title))
		}
		fmt.Fprintf(b, `<p>%s</p>`, esc(p.Description))
		if len(p.Frameworks) > 0 {
			fmt.Fprintf(b, `<p class="frameworks">%s</p>`, esc(JoinFrameworks(p.Frameworks)))
		}
		fmt.Fprintf(b, `<p><a href="/admin/portofolio-admin/%d/edit/">Edit</a> `+
			`<a href="/admin/portofolio-admin/%d/delete/">Hapus</a></p>`, p.ID, p.ID)
		b.WriteString(`<a href="/admin/portofolio-admin/">&larr; Kembali</a>`)
	})
}

// AdminConfirmDelete renders the delete confirmation step.
func AdminConfirmDelete(cfg SiteConfig, p Project, csrfToken string) templ.Component {
	return adminPage(cfg, "Hapus Proyek", func(b *strings.Builder) {
		fmt.Fprintf(b, `<h1>Hapus Proyek</h1><p>Yakin ingin menghapus <strong>%s</strong>? Tindakan ini tidak bisa dibatalkan.</p>`, esc(p.Title))
		fmt.Fprintf(b, `<form method="post" action="/admin/portofolio-admin/%d/delete/">`, p.ID)
		csrfField(b, csrfToken)
		b.WriteString(`<button type="submit" class="danger">Ya, hapus</button> ` +
			`<a href="/admin/portofolio-admin/">Batal</a></form>`)
	})
}

func flash(b *strings.Builder, msg string) {
	if msg != "" {
		fmt.Fprintf(b, `<p class="flash">%s</p>`, esc(msg))
	}
}

func logoutForm(b *strings.Builder, csrfToken string) {
	b.WriteString(`<form class="logout" method="post" action="/admin/logout/">`)
	csrfField(b, csrfToken)
	b.WriteString(`<button type="submit">Logout</button></form>`)
}
