package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"path"
	"strings"

	"docgate/internal/model"
	"docgate/internal/storage"
)

// Delivery modes. Anything that is not explicitly "download" views inline.
const (
	ModeView     = "view"
	ModeDownload = "download"
)

const (
	defaultFilename  = "documento"
	maxFilenameRunes = 160
)

func parseMode(raw string) string {
	if strings.TrimSpace(strings.ToLower(raw)) == ModeDownload {
		return ModeDownload
	}
	return ModeView
}

// sanitizeFilename strips path separators, control characters and NUL bytes,
// trims surrounding whitespace and caps the result at 160 runes. An empty
// result becomes "documento". Sanitizing twice returns the same value.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '/' || r == '\\' || r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}

	clean := strings.TrimSpace(b.String())
	if runes := []rune(clean); len(runes) > maxFilenameRunes {
		clean = string(runes[:maxFilenameRunes])
	}
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return defaultFilename
	}
	return clean
}

// disposition composes the Content-Disposition value the grant will carry.
// Embedded double quotes are removed outright, not escaped.
func disposition(mode, filename string) string {
	kind := "inline"
	if mode == ModeDownload {
		kind = "attachment"
	}
	return kind + `; filename="` + strings.ReplaceAll(filename, `"`, "") + `"`
}

func isPDF(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".pdf")
}

// deliver turns an authorized document into a grant. The primary path is a
// signed URL bounded by the configured TTL; when the object is missing from
// storage, or signing fails, delivery falls through to the explicit legacy
// step rather than surfacing the error.
func (s *accessService) deliver(ctx context.Context, doc *model.Document, bucket, key, mode string) (*AccessGrant, error) {
	filename := doc.ArchivoNombre
	if filename == "" {
		filename = path.Base(key)
	}
	filename = sanitizeFilename(filename)

	disp := disposition(mode, filename)
	contentType := ""
	if mode == ModeView && isPDF(filename) {
		contentType = "application/pdf"
	}

	attrs, err := s.store.Stat(ctx, bucket, key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		s.logger.Info("object missing from storage, using legacy url",
			slog.String("document_id", doc.ID),
			slog.String("bucket", bucket),
			slog.String("key", key))
		return s.legacyGrant(doc, disp, contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("while checking object %s/%s: %w", bucket, key, err)
	}

	expires := s.now().Add(s.cfg.SignedURLTTL)
	signedURL, err := s.store.SignedGet(ctx, bucket, key, storage.SignOptions{
		Expires:             expires,
		ResponseDisposition: disp,
		ResponseContentType: contentType,
	})
	if err != nil {
		s.logger.Warn("signed url issuance failed",
			slog.String("document_id", doc.ID),
			slog.String("error", err.Error()))
		// The legacy URL rescues the request only if it is actually usable;
		// otherwise the signing error is the one worth surfacing.
		if grant, lerr := s.legacyGrant(doc, disp, contentType); lerr == nil {
			return grant, nil
		}
		return nil, fmt.Errorf("while signing %s/%s: %w", bucket, key, err)
	}

	size := attrs.Size
	if size <= 0 {
		size = recordedSize(doc)
	}

	expiresAt := expires.UnixMilli()
	return &AccessGrant{URL: signedURL, ExpiresAt: &expiresAt, SizeBytes: size}, nil
}

// legacyGrant is the named fallback step: rewrite the already-public
// archivoURL so it carries the requested disposition. Legacy links have no
// bounded lifetime, hence the nil ExpiresAt.
func (s *accessService) legacyGrant(doc *model.Document, disp, contentType string) (*AccessGrant, error) {
	if doc.ArchivoURL == "" {
		return nil, ErrFileGone
	}

	u, err := url.Parse(doc.ArchivoURL)
	if err != nil {
		return nil, ErrFileGone
	}

	q := u.Query()
	q.Set("response-content-disposition", disp)
	if contentType != "" {
		q.Set("response-content-type", contentType)
	}
	u.RawQuery = q.Encode()

	return &AccessGrant{URL: u.String(), ExpiresAt: nil, SizeBytes: recordedSize(doc)}, nil
}

// recordedSize returns the size stored on the record if it is a positive
// finite number, else 0.
func recordedSize(doc *model.Document) int64 {
	v := doc.ArchivoTamanoBytes
	if v > 0 && !math.IsInf(v, 1) && !math.IsNaN(v) {
		return int64(v)
	}
	return 0
}
