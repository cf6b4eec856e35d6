package pklfolio

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested project does not exist.
var ErrNotFound = errors.New("project not found")

// Framework is one technology entry attached to a project. The logo URL is
// optional; entries created from the plain-text form field carry only a name.
type Framework struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Project is the single domain entity: one portfolio entry managed from the
// admin area and rendered on the public pages. JSON tags keep the field names
// the original frontend used, so the /api/projects surface stays compatible.
type Project struct {
	ID          int64       `json:"id"`
	Title       string      `json:"judul"`
	Description string      `json:"deskripsi"`
	Category    string      `json:"jenis_projek"`
	StartDate   *time.Time  `json:"tanggal_buat"`
	EndDate     *time.Time  `json:"tanggal_selesai"`
	Frameworks  []Framework `json:"framework"`
	ImageRef    string      `json:"dokum"`
	CreatedAt   time.Time   `json:"created_at"`
}

// ProjectDraft carries the writable fields of a project. The id and creation
// timestamp are assigned by the store.
type ProjectDraft struct {
	Title       string
	Description string
	Category    string
	StartDate   *time.Time
	EndDate     *time.Time
	Frameworks  []Framework
	ImageRef    string
}

// ListOptions bounds and orders a project listing. A zero value lists
// everything, newest first.
type ListOptions struct {
	OrderBy string // "created_at" (default) or "tanggal_buat"
	Limit   int    // 0 means no limit
}

// ProjectStore is the persistence facade the handlers talk to. *Store is the
// Postgres implementation; tests substitute an in-memory fake.
type ProjectStore interface {
	ListProjects(ctx context.Context, opts ListOptions) ([]Project, error)
	CountProjects(ctx context.Context) (int, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	CreateProject(ctx context.Context, draft ProjectDraft) (Project, error)
	UpdateProject(ctx context.Context, id int64, draft ProjectDraft) (Project, error)
	DeleteProject(ctx context.Context, id int64) error
}
