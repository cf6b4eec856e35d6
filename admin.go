package pklfolio

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nafzev/pklfolio/views"
)

const dashboardPath = "/admin/dashboard-admin/"

func (a *App) handleAdminIndex(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (a *App) handleAdminLoginForm(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	return Render(c, views.AdminLogin(a.siteConfig(), false, CsrfToken(c)))
}

// handleAdminLogin checks the posted credentials against the configured
// admin account. Failures are rate limited per IP and both fields are
// compared in constant time.
func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.TrimSpace(c.FormValue("email"))
	pass := c.FormValue("password")
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.Config.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
	if emailOK && passOK {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, dashboardPath)
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, views.AdminLogin(a.siteConfig(), true, CsrfToken(c)))
}

func (a *App) handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, loginPath)
}

func (a *App) handleAdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	total, err := a.Store.CountProjects(ctx)
	if err != nil {
		return err
	}
	recent, err := a.Store.ListProjects(ctx, ListOptions{Limit: 5})
	if err != nil {
		return err
	}
	stats := a.visitStats()
	return Render(c, views.AdminDashboard(a.siteConfig(), total, a.projectViewList(recent), stats, c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminProjects(c echo.Context) error {
	// Admin reads bypass the cache: the listing must reflect the store
	// exactly, including writes from another admin session.
	projects, err := a.Store.ListProjects(c.Request().Context(), ListOptions{})
	if err != nil {
		return err
	}
	return Render(c, views.AdminProjects(a.siteConfig(), a.projectViewList(projects), c.QueryParam("msg"), CsrfToken(c)))
}

func (a *App) handleAdminCreateForm(c echo.Context) error {
	return Render(c, views.AdminProjectForm(a.siteConfig(), views.Project{}, true, c.QueryParam("msg"), CsrfToken(c)))
}

// handleAdminCreate stores a new project. When an image is attached the blob
// upload happens first; if the insert then fails the blob is deleted again so
// the two-step write never leaves an orphan.
func (a *App) handleAdminCreate(c echo.Context) error {
	ctx := c.Request().Context()
	draft, err := a.draftFromForm(c)
	if err != nil {
		return a.rerenderCreate(c, err)
	}

	var uploadedKey string
	if file, ferr := c.FormFile("dokum"); ferr == nil && file != nil {
		uploadedKey, err = a.storeUpload(ctx, file)
		if err != nil {
			return a.rerenderCreate(c, err)
		}
		draft.ImageRef = uploadedKey
	}

	if _, err := a.Store.CreateProject(ctx, draft); err != nil {
		a.discardUpload(ctx, uploadedKey)
		return a.rerenderCreate(c, fmt.Errorf("gagal menyimpan proyek: %w", err))
	}

	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/portofolio-admin/?msg=Proyek+berhasil+disimpan")
}

// rerenderCreate shows the create form again with an error message, keeping
// the submitted values so nothing typed is lost.
func (a *App) rerenderCreate(c echo.Context, cause error) error {
	p := views.Project{
		Title:       c.FormValue("judul"),
		Description: c.FormValue("deskripsi"),
		Category:    c.FormValue("jenis_projek"),
		StartDate:   c.FormValue("tanggal_buat"),
		EndDate:     c.FormValue("tanggal_selesai"),
	}
	for _, f := range ParseFrameworkList(c.FormValue("framework")) {
		p.Frameworks = append(p.Frameworks, views.Framework{Name: f.Name})
	}
	return RenderStatus(c, http.StatusBadRequest,
		views.AdminProjectForm(a.siteConfig(), p, true, cause.Error(), CsrfToken(c)))
}

func (a *App) handleAdminDetail(c echo.Context) error {
	p, err := a.adminProject(c)
	if err != nil {
		return err
	}
	return Render(c, views.AdminProjectDetail(a.siteConfig(), a.projectView(p), CsrfToken(c)))
}

func (a *App) handleAdminEditForm(c echo.Context) error {
	p, err := a.adminProject(c)
	if err != nil {
		return err
	}
	return Render(c, views.AdminProjectForm(a.siteConfig(), a.projectView(p), false, c.QueryParam("msg"), CsrfToken(c)))
}

// handleAdminEdit updates a project. A newly uploaded image replaces the old
// blob only after the record update succeeds.
func (a *App) handleAdminEdit(c echo.Context) error {
	ctx := c.Request().Context()
	existing, err := a.adminProject(c)
	if err != nil {
		return err
	}

	draft, err := a.draftFromForm(c)
	if err != nil {
		return RenderStatus(c, http.StatusBadRequest,
			views.AdminProjectForm(a.siteConfig(), a.projectView(existing), false, err.Error(), CsrfToken(c)))
	}
	draft.ImageRef = existing.ImageRef

	var uploadedKey string
	if file, ferr := c.FormFile("dokum"); ferr == nil && file != nil {
		uploadedKey, err = a.storeUpload(ctx, file)
		if err != nil {
			return RenderStatus(c, http.StatusBadRequest,
				views.AdminProjectForm(a.siteConfig(), a.projectView(existing), false, err.Error(), CsrfToken(c)))
		}
		draft.ImageRef = uploadedKey
	}

	if _, err := a.Store.UpdateProject(ctx, existing.ID, draft); err != nil {
		a.discardUpload(ctx, uploadedKey)
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return RenderStatus(c, http.StatusBadRequest,
			views.AdminProjectForm(a.siteConfig(), a.projectView(existing), false,
				fmt.Sprintf("gagal menyimpan proyek: %v", err), CsrfToken(c)))
	}

	if uploadedKey != "" {
		a.deleteStoredImage(ctx, existing.ImageRef)
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/portofolio-admin/?msg=Proyek+berhasil+diperbarui")
}

func (a *App) handleAdminDeleteConfirm(c echo.Context) error {
	p, err := a.adminProject(c)
	if err != nil {
		return err
	}
	return Render(c, views.AdminConfirmDelete(a.siteConfig(), a.projectView(p), CsrfToken(c)))
}

// handleAdminDelete removes the record first, then its image blob. A blob
// delete failure is logged, not surfaced: the record is already gone.
func (a *App) handleAdminDelete(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := a.adminProject(c)
	if err != nil {
		return err
	}
	if err := a.Store.DeleteProject(ctx, p.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return err
	}
	a.deleteStoredImage(ctx, p.ImageRef)
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/portofolio-admin/?msg=Proyek+dihapus")
}

// adminProject loads the project named by the :id route param, translating
// a bad id or missing row into a 404.
func (a *App) adminProject(c echo.Context) (Project, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Project{}, echo.NewHTTPError(http.StatusNotFound)
	}
	p, err := a.Store.GetProject(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return Project{}, echo.NewHTTPError(http.StatusNotFound)
	}
	return p, err
}

// draftFromForm builds a ProjectDraft from the admin form fields. Dates are
// optional and deliberately unordered: the data layer never enforces that
// selesai follows mulai.
func (a *App) draftFromForm(c echo.Context) (ProjectDraft, error) {
	if err := c.Request().ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return ProjectDraft{}, fmt.Errorf("parse form: %w", err)
	}
	title := strings.TrimSpace(c.FormValue("judul"))
	if title == "" {
		return ProjectDraft{}, fmt.Errorf("judul proyek wajib diisi")
	}
	start, err := ParseDate(c.FormValue("tanggal_buat"))
	if err != nil {
		return ProjectDraft{}, fmt.Errorf("format tanggal mulai salah, gunakan YYYY-MM-DD")
	}
	end, err := ParseDate(c.FormValue("tanggal_selesai"))
	if err != nil {
		return ProjectDraft{}, fmt.Errorf("format tanggal selesai salah, gunakan YYYY-MM-DD")
	}
	return ProjectDraft{
		Title:       title,
		Description: c.FormValue("deskripsi"),
		Category:    strings.TrimSpace(c.FormValue("jenis_projek")),
		StartDate:   start,
		EndDate:     end,
		Frameworks:  ParseFrameworkList(c.FormValue("framework")),
	}, nil
}
