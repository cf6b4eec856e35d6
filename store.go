package pklfolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a Postgres connection pool and provides CRUD operations for
// project records. The table layout follows the original site's "project"
// table; the divergent "projek" variant was historical noise and is gone.
type Store struct {
	db *pgxpool.Pool
}

// NewStore connects to the database at url and runs schema setup.
func NewStore(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS project (
    id BIGSERIAL PRIMARY KEY,
    judul TEXT NOT NULL,
    deskripsi TEXT NOT NULL DEFAULT '',
    jenis_projek TEXT NOT NULL DEFAULT '',
    tanggal_buat DATE,
    tanggal_selesai DATE,
    framework JSONB NOT NULL DEFAULT '[]'::jsonb,
    dokum TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const projectColumns = `id, judul, deskripsi, jenis_projek, tanggal_buat, tanggal_selesai, framework, dokum, created_at`

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	var frameworks []byte
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category,
		&p.StartDate, &p.EndDate, &frameworks, &p.ImageRef, &p.CreatedAt)
	if err != nil {
		return Project{}, err
	}
	if len(frameworks) > 0 {
		if err := json.Unmarshal(frameworks, &p.Frameworks); err != nil {
			return Project{}, fmt.Errorf("decode frameworks for project %d: %w", p.ID, err)
		}
	}
	return p, nil
}

// ListProjects returns projects ordered and bounded by opts. An empty table
// yields an empty slice, not an error.
func (s *Store) ListProjects(ctx context.Context, opts ListOptions) ([]Project, error) {
	// Order column is whitelisted; opts.OrderBy never reaches the SQL text.
	order := "created_at"
	if opts.OrderBy == "tanggal_buat" {
		order = "tanggal_buat"
	}
	q := fmt.Sprintf(`SELECT %s FROM project ORDER BY %s DESC NULLS LAST, id DESC`, projectColumns, order)
	args := []any{}
	if opts.Limit > 0 {
		q += ` LIMIT $1`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountProjects returns the total number of project records.
func (s *Store) CountProjects(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM project`).Scan(&n)
	return n, err
}

// GetProject returns a single project by id, or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id int64) (Project, error) {
	q := fmt.Sprintf(`SELECT %s FROM project WHERE id = $1`, projectColumns)
	p, err := scanProject(s.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// CreateProject inserts a new record and returns it with its assigned id.
// There is deliberately no uniqueness constraint on the title; repeated
// titles produce distinct records.
func (s *Store) CreateProject(ctx context.Context, draft ProjectDraft) (Project, error) {
	frameworks, err := marshalFrameworks(draft.Frameworks)
	if err != nil {
		return Project{}, err
	}
	q := fmt.Sprintf(`
INSERT INTO project (judul, deskripsi, jenis_projek, tanggal_buat, tanggal_selesai, framework, dokum)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING %s`, projectColumns)
	return scanProject(s.db.QueryRow(ctx, q,
		draft.Title, draft.Description, draft.Category,
		draft.StartDate, draft.EndDate, frameworks, draft.ImageRef))
}

// UpdateProject replaces the writable fields of an existing record.
func (s *Store) UpdateProject(ctx context.Context, id int64, draft ProjectDraft) (Project, error) {
	frameworks, err := marshalFrameworks(draft.Frameworks)
	if err != nil {
		return Project{}, err
	}
	q := fmt.Sprintf(`
UPDATE project
SET judul = $2, deskripsi = $3, jenis_projek = $4, tanggal_buat = $5,
    tanggal_selesai = $6, framework = $7, dokum = $8
WHERE id = $1
RETURNING %s`, projectColumns)
	p, err := scanProject(s.db.QueryRow(ctx, q, id,
		draft.Title, draft.Description, draft.Category,
		draft.StartDate, draft.EndDate, frameworks, draft.ImageRef))
	if errors.Is(err, pgx.ErrNoRows) {
		return Project{}, ErrNotFound
	}
	return p, err
}

// DeleteProject removes a record by id, or returns ErrNotFound.
func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	ct, err := s.db.Exec(ctx, `DELETE FROM project WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func marshalFrameworks(fws []Framework) ([]byte, error) {
	if fws == nil {
		fws = []Framework{}
	}
	b, err := json.Marshal(fws)
	if err != nil {
		return nil, fmt.Errorf("encode frameworks: %w", err)
	}
	return b, nil
}
