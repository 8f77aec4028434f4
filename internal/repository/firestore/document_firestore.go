// Package firestore implements the repository interfaces on Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"docgate/internal/model"
	"docgate/internal/repository"
)

// Collection names used by the portal.
const (
	colDocuments = "documents"
	colChildren  = "children"
	colUsers     = "users"
)

// DocumentFirestore reads document records from the documents collection.
type DocumentFirestore struct {
	client *firestore.Client
}

// NewDocumentFirestore constructs a document repository over the given client.
func NewDocumentFirestore(client *firestore.Client) *DocumentFirestore {
	return &DocumentFirestore{client: client}
}

// FindByID fetches a document record by its ID.
func (r *DocumentFirestore) FindByID(ctx context.Context, id string) (*model.Document, error) {
	snap, err := r.client.Collection(colDocuments).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("while fetching document %q: %w", id, err)
	}

	doc := &model.Document{}
	if err := snap.DataTo(doc); err != nil {
		return nil, fmt.Errorf("while unmarshaling document %q: %w", id, err)
	}
	doc.ID = snap.Ref.ID
	return doc, nil
}

// Ping issues a one-document read against the documents collection to verify
// Firestore is reachable.
func (r *DocumentFirestore) Ping(ctx context.Context) error {
	iter := r.client.Collection(colDocuments).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return fmt.Errorf("while pinging firestore: %w", err)
	}
	return nil
}
