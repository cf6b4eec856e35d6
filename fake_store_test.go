package pklfolio

import (
	"context"
	"sort"
	"sync"
	"time"
)

// fakeStore is an in-memory ProjectStore for handler and cache tests.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	projects map[int64]Project

	listCalls int
	listErr   error
	createErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextID: 1, projects: make(map[int64]Project)}
}

func (f *fakeStore) seed(drafts ...ProjectDraft) []Project {
	out := make([]Project, 0, len(drafts))
	for _, d := range drafts {
		p, _ := f.CreateProject(context.Background(), d)
		out = append(out, p)
	}
	return out
}

func (f *fakeStore) ListProjects(_ context.Context, opts ListOptions) ([]Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (f *fakeStore) CountProjects(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.projects), nil
}

func (f *fakeStore) GetProject(_ context.Context, id int64) (Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

func (f *fakeStore) CreateProject(_ context.Context, draft ProjectDraft) (Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return Project{}, f.createErr
	}
	fws := draft.Frameworks
	if fws == nil {
		fws = []Framework{}
	}
	p := Project{
		ID:          f.nextID,
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		StartDate:   draft.StartDate,
		EndDate:     draft.EndDate,
		Frameworks:  fws,
		ImageRef:    draft.ImageRef,
		CreatedAt:   time.Now(),
	}
	f.nextID++
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeStore) UpdateProject(_ context.Context, id int64, draft ProjectDraft) (Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	p.Title = draft.Title
	p.Description = draft.Description
	p.Category = draft.Category
	p.StartDate = draft.StartDate
	p.EndDate = draft.EndDate
	p.Frameworks = draft.Frameworks
	p.ImageRef = draft.ImageRef
	f.projects[id] = p
	return p, nil
}

func (f *fakeStore) DeleteProject(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.projects[id]; !ok {
		return ErrNotFound
	}
	delete(f.projects, id)
	return nil
}
