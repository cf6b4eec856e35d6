package pklfolio

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// projectPayload is the JSON body accepted by the create endpoint. Dates
// arrive as YYYY-MM-DD strings and the field names mirror the stored columns.
type projectPayload struct {
	Title       string      `json:"judul"`
	Description string      `json:"deskripsi"`
	Category    string      `json:"jenis_projek"`
	StartDate   string      `json:"tanggal_buat"`
	EndDate     string      `json:"tanggal_selesai"`
	Frameworks  []Framework `json:"framework"`
	ImageRef    string      `json:"dokum"`
}

type apiError struct {
	Error string `json:"error"`
}

// handleAPIProjects returns every project as JSON, newest first.
func (a *App) handleAPIProjects(c echo.Context) error {
	projects, err := a.Store.ListProjects(c.Request().Context(), ListOptions{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// handleAPICreateProject inserts a project from a JSON body. Only reachable
// through the admin gate.
func (a *App) handleAPICreateProject(c echo.Context) error {
	var in projectPayload
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "invalid JSON body"})
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return c.JSON(http.StatusBadRequest, apiError{Error: "judul wajib diisi"})
	}
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "tanggal_buat: gunakan format YYYY-MM-DD"})
	}
	end, err := ParseDate(in.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiError{Error: "tanggal_selesai: gunakan format YYYY-MM-DD"})
	}

	p, err := a.Store.CreateProject(c.Request().Context(), ProjectDraft{
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		StartDate:   start,
		EndDate:     end,
		Frameworks:  in.Frameworks,
		ImageRef:    in.ImageRef,
	})
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	a.Cache.Invalidate()
	return c.JSON(http.StatusCreated, p)
}
