package service

import (
	"context"
	"fmt"

	"docgate/internal/auth"
	"docgate/internal/model"
)

// RoleFamily is the only role whose access is further restricted by scope.
const RoleFamily = "family"

// authorize decides whether the identity may access the document. It reads
// child records for the guardian scope lookup but never mutates anything, and
// nothing it computes outlives the request.
//
// Decision order: empty role denies; administrative roles bypass everything;
// the document must declare the caller's role; non-family roles pass once
// declared; family callers additionally need the document's scope, either
// because it is global or because they are guardian of a child in it.
func (s *accessService) authorize(ctx context.Context, ident auth.Identity, doc *model.Document) error {
	if ident.Role == "" {
		return ErrForbidden
	}

	if s.isAdmin(ident.Role) {
		return nil
	}

	if !containsRole(doc.NormalizedRoles(), ident.Role) {
		return ErrForbidden
	}

	if ident.Role != RoleFamily {
		return nil
	}

	docScope := doc.Scope()
	if docScope == model.ScopeGlobal {
		return nil
	}

	scopes, err := s.guardianScopes(ctx, ident.UID)
	if err != nil {
		return fmt.Errorf("while computing guardian scopes for %q: %w", ident.UID, err)
	}
	if _, ok := scopes[docScope]; !ok {
		return ErrForbidden
	}
	return nil
}

func (s *accessService) isAdmin(role string) bool {
	for _, admin := range s.cfg.AdminRoles {
		if model.NormalizeRole(admin) == role {
			return true
		}
	}
	return false
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// guardianScopes computes the set of workshop scopes the caller can reach as
// a guardian, fresh on every request.
//
// Two tiers: an indexed array-membership query first (only matches children
// storing guardians as bare uid strings), then, if that did not already prove
// both workshop scopes, a bounded scan over all workshop children with a
// manual responsables match that also accepts the {uid} object shape. The
// second query is issued only when needed, never speculatively.
func (s *accessService) guardianScopes(ctx context.Context, uid string) (map[model.Scope]struct{}, error) {
	scopes := make(map[model.Scope]struct{}, len(model.WorkshopScopes))

	indexed, err := s.children.ListByGuardian(ctx, uid, s.cfg.GuardianQueryLimit)
	if err != nil {
		return nil, err
	}
	for _, child := range indexed {
		addWorkshopScope(scopes, child.Scope())
	}
	if len(scopes) == len(model.WorkshopScopes) {
		return scopes, nil
	}

	scanned, err := s.children.ListByScopes(ctx, model.WorkshopScopes, s.cfg.ScopeScanLimit)
	if err != nil {
		return nil, err
	}
	for _, child := range scanned {
		if child.HasGuardian(uid) {
			addWorkshopScope(scopes, child.Scope())
		}
	}
	return scopes, nil
}

// addWorkshopScope records a scope only if it is one of the workshop scopes;
// global children contribute nothing to the set.
func addWorkshopScope(set map[model.Scope]struct{}, scope model.Scope) {
	for _, w := range model.WorkshopScopes {
		if scope == w {
			set[scope] = struct{}{}
			return
		}
	}
}
