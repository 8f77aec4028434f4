package repository

import (
	"context"

	"docgate/internal/model"
)

// DocumentRepository defines read access to document records.
// Implementations carry no business logic, only persistence reads.
type DocumentRepository interface {
	// FindByID returns a document record by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// Ping performs a cheap read to verify the backing store is reachable.
	Ping(ctx context.Context) error
}
