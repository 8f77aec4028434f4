package repository

import (
	"context"

	"docgate/internal/model"
)

// ChildRepository defines the two query strategies used to derive a
// guardian's scope set. Both are capped: guardian membership is not reliably
// indexed across historical data shapes, so the caller combines an indexed
// first pass with a bounded scan.
type ChildRepository interface {
	// ListByGuardian returns up to limit children whose responsables array
	// contains uid as a bare string. Children that store guardians as
	// {uid: ...} objects are NOT matched by this query; that is what
	// ListByScopes compensates for.
	ListByGuardian(ctx context.Context, uid string, limit int) ([]model.Child, error)

	// ListByScopes returns up to limit children whose ambiente is one of the
	// given scopes, for a manual responsables scan by the caller.
	ListByScopes(ctx context.Context, scopes []model.Scope, limit int) ([]model.Child, error)
}
