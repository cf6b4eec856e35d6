package pklfolio

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// formToken fetches an admin form page and returns its CSRF token plus the
// _csrf cookie, so a test can post the form the way a browser would.
func formToken(t *testing.T, a *App, admin *http.Cookie, path string) (string, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(admin)
	rec := doRequest(a, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", path, rec.Code)
	}
	m := csrfInputRe.FindStringSubmatch(rec.Body.String())
	if m == nil {
		t.Fatalf("%s has no CSRF field", path)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			return m[1], c
		}
	}
	t.Fatalf("%s issued no CSRF cookie", path)
	return "", nil
}

// storedUploads lists every file the app's local blob store has on disk.
func storedUploads(t *testing.T, a *App) []string {
	t.Helper()
	lb, ok := a.Blobs.(*LocalBlobStore)
	if !ok {
		t.Fatal("test app does not use a LocalBlobStore")
	}
	var out []string
	err := filepath.WalkDir(lb.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk uploads dir: %v", err)
	}
	return out
}

// postMultipartCreate submits the admin create form with an attached image.
func postMultipartCreate(t *testing.T, a *App, admin *http.Cookie, title string) *httptest.ResponseRecorder {
	t.Helper()
	token, csrf := formToken(t, a, admin, "/admin/portofolio-admin/create/")

	var body strings.Builder
	mw := multipart.NewWriter(&body)
	mw.WriteField("_csrf", token)
	mw.WriteField("judul", title)
	mw.WriteField("jenis_projek", "projek")
	fw, err := mw.CreateFormFile("dokum", "dokum.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := io.Copy(fw, pngImage(t, 100, 100)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/portofolio-admin/create/", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(admin)
	req.AddCookie(csrf)
	return doRequest(a, req)
}

func TestAdminCreateStoresUpload(t *testing.T) {
	store := newFakeStore()
	a := newTestApp(t, store)
	admin := mintAdminCookie(t, a)

	rec := postMultipartCreate(t, a, admin, "Proyek Bergambar")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("create with image = %d, want %d: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}

	if got := storedUploads(t, a); len(got) != 1 {
		t.Fatalf("uploads on disk = %d, want 1: %v", len(got), got)
	}
	p, err := store.GetProject(context.Background(), 1)
	if err != nil {
		t.Fatalf("created project missing: %v", err)
	}
	if !strings.HasPrefix(p.ImageRef, "project/") {
		t.Errorf("ImageRef = %q, want a project/ storage key", p.ImageRef)
	}
}

func TestAdminCreateDiscardsUploadWhenInsertFails(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("koneksi database putus")
	a := newTestApp(t, store)
	admin := mintAdminCookie(t, a)

	rec := postMultipartCreate(t, a, admin, "Proyek Gagal")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create with failing store = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "gagal menyimpan proyek") {
		t.Error("form re-render should carry the save error message")
	}

	// The image was uploaded before the insert; the failure must have
	// deleted it again.
	if got := storedUploads(t, a); len(got) != 0 {
		t.Errorf("uploads on disk after failed insert = %v, want none", got)
	}
}

// postDelete walks the confirm-then-delete flow for one project.
func postDelete(t *testing.T, a *App, admin *http.Cookie, id string) *httptest.ResponseRecorder {
	t.Helper()
	confirmPath := "/admin/portofolio-admin/" + id + "/delete/"
	token, csrf := formToken(t, a, admin, confirmPath)

	form := url.Values{}
	form.Set("_csrf", token)
	req := httptest.NewRequest(http.MethodPost, confirmPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(admin)
	req.AddCookie(csrf)
	return doRequest(a, req)
}

func TestAdminDeleteRemovesStoredImage(t *testing.T) {
	store := newFakeStore()
	a := newTestApp(t, store)
	admin := mintAdminCookie(t, a)

	key := "project/1712345678901-abcd1234.jpg"
	if err := a.Blobs.Put(context.Background(), key, "image/jpeg", []byte("jpeg-bytes")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	store.seed(ProjectDraft{Title: "Akan Dihapus", ImageRef: key})

	rec := postDelete(t, a, admin, "1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if _, err := store.GetProject(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("project still in store after delete: %v", err)
	}
	if got := storedUploads(t, a); len(got) != 0 {
		t.Errorf("blob still on disk after delete: %v", got)
	}
}

func TestAdminDeleteKeepsBlobWhenStoreFails(t *testing.T) {
	store := newFakeStore()
	a := newTestApp(t, store)
	admin := mintAdminCookie(t, a)

	key := "project/1712345678901-ffff0000.jpg"
	if err := a.Blobs.Put(context.Background(), key, "image/jpeg", []byte("jpeg-bytes")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	store.seed(ProjectDraft{Title: "Tetap Ada", ImageRef: key})
	store.deleteErr = errors.New("koneksi database putus")

	rec := postDelete(t, a, admin, "1")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("delete with failing store = %d, want 500", rec.Code)
	}
	// Record first, blob second: a failed record delete leaves the image
	// untouched.
	if got := storedUploads(t, a); len(got) != 1 {
		t.Errorf("blob should survive a failed record delete: %v", got)
	}
}

// recordingBlobs wraps a BlobStore and remembers which keys were deleted.
type recordingBlobs struct {
	BlobStore
	mu      sync.Mutex
	deleted []string
}

func (r *recordingBlobs) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	r.deleted = append(r.deleted, key)
	r.mu.Unlock()
	return r.BlobStore.Delete(ctx, key)
}

func TestAdminDeleteLeavesExternalImageAlone(t *testing.T) {
	store := newFakeStore()
	a := newTestApp(t, store)
	rb := &recordingBlobs{BlobStore: a.Blobs}
	a.Blobs = rb
	admin := mintAdminCookie(t, a)

	store.seed(ProjectDraft{Title: "Gambar Eksternal", ImageRef: "https://cdn.example.com/foto.png"})

	rec := postDelete(t, a, admin, "1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if len(rb.deleted) != 0 {
		t.Errorf("blob store Delete called for external reference: %v", rb.deleted)
	}
	if _, err := store.GetProject(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("record should still be deleted: %v", err)
	}
}
