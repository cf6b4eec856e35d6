package pklfolio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nafzev/pklfolio/views"
)

// homeProjectCount bounds how many projects the landing page shows.
const homeProjectCount = 6

func (a *App) siteConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Bio:         a.Config.Bio,
	}
}

// projectView maps a domain project to its view model: dates formatted,
// image reference resolved to a fetchable URL.
func (a *App) projectView(p Project) views.Project {
	fws := make([]views.Framework, 0, len(p.Frameworks))
	for _, f := range p.Frameworks {
		fws = append(fws, views.Framework{Name: f.Name, LogoURL: f.LogoURL})
	}
	return views.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		StartDate:   FormatDate(p.StartDate),
		EndDate:     FormatDate(p.EndDate),
		Frameworks:  fws,
		ImageURL:    ResolveImageURL(a.Blobs, p.ImageRef),
		CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04"),
	}
}

func (a *App) projectViewList(ps []Project) []views.Project {
	out := make([]views.Project, 0, len(ps))
	for _, p := range ps {
		out = append(out, a.projectView(p))
	}
	return out
}

func (a *App) handleHome(c echo.Context) error {
	projects, err := a.Cache.ListProjects(c.Request().Context(), "")
	if err != nil {
		return err
	}
	if len(projects) > homeProjectCount {
		projects = projects[:homeProjectCount]
	}
	return Render(c, views.Home(a.siteConfig(), a.projectViewList(projects), a.photoStrip()))
}

func (a *App) handlePortfolio(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("jenis")
	projects, err := a.Cache.ListProjects(ctx, category)
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories(ctx)
	if err != nil {
		return err
	}
	return Render(c, views.Portfolio(a.siteConfig(), a.projectViewList(projects), strings.ToLower(strings.TrimSpace(category)), categories))
}

func (a *App) handleProjectDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.siteConfig()))
	}
	p, err := a.Cache.GetProject(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.siteConfig()))
		}
		return err
	}
	return Render(c, views.ProjectDetail(a.siteConfig(), a.projectView(p)))
}

func (a *App) handleBiodata(c echo.Context) error {
	return Render(c, views.Biodata(a.siteConfig()))
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically so the admin area is never
// indexed regardless of the static dir contents.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

// photoStrip lists the PKL moment photos from the static dir. The original
// hardcoded three filenames; scanning keeps the strip in sync with whatever
// is deployed.
func (a *App) photoStrip() []views.Photo {
	entries, err := os.ReadDir(a.Config.StaticDir)
	if err != nil {
		return nil
	}
	var photos []views.Photo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "memo") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".jpg", ".jpeg", ".png", ".webp":
			photos = append(photos, views.Photo{Src: "/public/" + name, Alt: "Moment PKL"})
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].Src < photos[j].Src })
	return photos
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.siteConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.siteConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
