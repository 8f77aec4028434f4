package storage

import (
	"context"
	"errors"
	"time"
)

// Package storage contains the object-store abstraction used by the delivery
// resolver. Implementations only need two read-side operations: a metadata
// probe and time-limited signed GET URLs. The gateway never writes objects.

// ObjectAttrs contains the live metadata of a stored object.
type ObjectAttrs struct {
	Size        int64
	ContentType string
	Updated     time.Time
}

// SignOptions define the parameters of a signed GET URL.
// ResponseDisposition and ResponseContentType are propagated to the store so
// the browser receives them as response headers during the grant's lifetime.
type SignOptions struct {
	Expires             time.Time
	ResponseDisposition string
	ResponseContentType string
}

// ErrObjectNotFound is returned by Stat when the object does not exist at the
// given bucket/key.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStore is a read-only object storage client. Implementations must be
// safe for concurrent use.
type ObjectStore interface {
	// Stat returns the object's live metadata, or ErrObjectNotFound.
	Stat(ctx context.Context, bucket, key string) (ObjectAttrs, error)

	// SignedGet returns a time-limited URL that can be used to download the
	// object without credentials.
	SignedGet(ctx context.Context, bucket, key string, opt SignOptions) (string, error)
}
