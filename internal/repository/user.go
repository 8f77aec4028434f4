package repository

import (
	"context"

	"docgate/internal/model"
)

// UserRepository defines read access to user profile records.
type UserRepository interface {
	// FindByID returns the profile for a uid, or ErrNotFound.
	FindByID(ctx context.Context, uid string) (*model.UserProfile, error)
}
