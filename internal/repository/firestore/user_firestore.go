package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"docgate/internal/model"
	"docgate/internal/repository"
)

// UserFirestore reads user profiles from the users collection.
type UserFirestore struct {
	client *firestore.Client
}

// NewUserFirestore constructs a user repository over the given client.
func NewUserFirestore(client *firestore.Client) *UserFirestore {
	return &UserFirestore{client: client}
}

// FindByID fetches the profile record for a uid.
func (r *UserFirestore) FindByID(ctx context.Context, uid string) (*model.UserProfile, error) {
	snap, err := r.client.Collection(colUsers).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("while fetching user %q: %w", uid, err)
	}

	profile := &model.UserProfile{}
	if err := snap.DataTo(profile); err != nil {
		return nil, fmt.Errorf("while unmarshaling user %q: %w", uid, err)
	}
	profile.UID = snap.Ref.ID
	return profile, nil
}
