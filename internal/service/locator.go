package service

import (
	"net/url"
	"strings"

	"docgate/internal/model"
)

// Storage location resolution. Document records were written by three
// generations of upload code, so the path and the bucket are each resolved
// through an ordered chain of extractors; the first success wins. Path and
// bucket are resolved independently: a record may yield a path from one shape
// and a bucket from another.

type pathExtractor func(*model.Document) (string, bool)

var pathExtractors = []pathExtractor{
	pathFromField,
	pathFromCategory,
	pathFromLegacyURL,
}

// resolveStoragePath returns the object key for a document record, or
// ErrPathUnresolved when no shape yields one.
func resolveStoragePath(doc *model.Document) (string, error) {
	for _, extract := range pathExtractors {
		if p, ok := extract(doc); ok {
			return p, nil
		}
	}
	return "", ErrPathUnresolved
}

// resolveBucket returns the bucket for a document record, or "" to signal
// that the deployment's default bucket applies. Missing bucket is not an
// error.
func resolveBucket(doc *model.Document) string {
	if doc.StorageBucket != "" {
		return doc.StorageBucket
	}
	if doc.Bucket != "" {
		return doc.Bucket
	}
	return bucketFromLegacyURL(doc.ArchivoURL)
}

// pathFromField uses the explicit storagePath field, minus leading slashes.
func pathFromField(doc *model.Document) (string, bool) {
	p := strings.TrimLeft(doc.StoragePath, "/")
	return p, p != ""
}

// pathFromCategory synthesizes documents/<categoria>/<archivoNombre>, the
// layout of the intermediate upload generation.
func pathFromCategory(doc *model.Document) (string, bool) {
	if doc.Categoria == "" || doc.ArchivoNombre == "" {
		return "", false
	}
	return "documents/" + doc.Categoria + "/" + doc.ArchivoNombre, true
}

// pathFromLegacyURL decodes the object key embedded in a legacy archivoURL.
// Two URL shapes exist: gs://bucket/key and HTTP(S) download URLs with a
// /o/<url-encoded-key> segment.
func pathFromLegacyURL(doc *model.Document) (string, bool) {
	raw := doc.ArchivoURL
	if raw == "" {
		return "", false
	}

	if rest, ok := strings.CutPrefix(raw, "gs://"); ok {
		if _, key, found := strings.Cut(rest, "/"); found {
			key = strings.TrimLeft(key, "/")
			return key, key != ""
		}
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	// Use the escaped path so %2F-encoded slashes inside the key survive
	// until the single decode below.
	_, enc, found := strings.Cut(u.EscapedPath(), "/o/")
	if !found {
		return "", false
	}
	key, err := url.PathUnescape(enc)
	if err != nil {
		return "", false
	}
	key = strings.TrimLeft(key, "/")
	return key, key != ""
}

// bucketFromLegacyURL decodes the bucket embedded in a legacy archivoURL:
// the authority of a gs:// URI, or the /b/<bucket>/o/ segment of an HTTP(S)
// download URL.
func bucketFromLegacyURL(raw string) string {
	if raw == "" {
		return ""
	}

	if rest, ok := strings.CutPrefix(raw, "gs://"); ok {
		bucket, _, _ := strings.Cut(rest, "/")
		return bucket
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	_, rest, found := strings.Cut(u.EscapedPath(), "/b/")
	if !found {
		return ""
	}
	enc, _, found := strings.Cut(rest, "/o/")
	if !found {
		return ""
	}
	bucket, err := url.PathUnescape(enc)
	if err != nil {
		return ""
	}
	return bucket
}
