package pklfolio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"mime/multipart"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1280
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
)

// processImage decodes an image from src, resizes it down to maxImageWidth if
// wider, and re-encodes it as JPEG. Every stored project image goes through
// this pipeline regardless of the uploaded format.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// storeUpload processes a multipart image upload and writes it to the blob
// store. It returns the storage key for the new object.
func (a *App) storeUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return "", err
	}

	key := NewObjectKey("jpg")
	if err := a.Blobs.Put(ctx, key, "image/jpeg", data); err != nil {
		return "", err
	}
	return key, nil
}

// discardUpload removes a blob written by storeUpload. Used to compensate
// when the record insert fails after the upload succeeded, so a failed create
// never leaves an orphaned image behind.
func (a *App) discardUpload(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := a.Blobs.Delete(ctx, key); err != nil {
		a.Echo.Logger.Errorf("cleanup orphaned upload %s: %v", key, err)
	}
}

// deleteStoredImage removes the blob referenced by a project record, if the
// reference is storage-relative. Absolute URLs are someone else's object and
// are left alone.
func (a *App) deleteStoredImage(ctx context.Context, ref string) {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return
	}
	a.discardUpload(ctx, ref)
}
