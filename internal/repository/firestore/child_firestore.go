package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"docgate/internal/model"
)

// ChildFirestore reads child records from the children collection.
type ChildFirestore struct {
	client *firestore.Client
}

// NewChildFirestore constructs a child repository over the given client.
func NewChildFirestore(client *firestore.Client) *ChildFirestore {
	return &ChildFirestore{client: client}
}

// ListByGuardian queries children whose responsables array contains uid.
// array-contains only matches bare-string entries, so this is the fast but
// historically incomplete tier of the guardian lookup.
func (r *ChildFirestore) ListByGuardian(ctx context.Context, uid string, limit int) ([]model.Child, error) {
	query := r.client.Collection(colChildren).
		Where("responsables", "array-contains", uid).
		Limit(limit)
	return r.collect(ctx, query, fmt.Sprintf("children of guardian %q", uid))
}

// ListByScopes queries children whose ambiente is one of the given scopes.
func (r *ChildFirestore) ListByScopes(ctx context.Context, scopes []model.Scope, limit int) ([]model.Child, error) {
	values := make([]string, 0, len(scopes))
	for _, s := range scopes {
		values = append(values, string(s))
	}
	query := r.client.Collection(colChildren).
		Where("ambiente", "in", values).
		Limit(limit)
	return r.collect(ctx, query, fmt.Sprintf("children in scopes %v", values))
}

func (r *ChildFirestore) collect(ctx context.Context, query firestore.Query, what string) ([]model.Child, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var children []model.Child
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("while listing %s: %w", what, err)
		}

		child := model.Child{}
		if err := snap.DataTo(&child); err != nil {
			return nil, fmt.Errorf("while unmarshaling child %q: %w", snap.Ref.ID, err)
		}
		child.ID = snap.Ref.ID
		children = append(children, child)
	}
	return children, nil
}
