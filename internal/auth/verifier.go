// Package auth verifies the portal's Firebase ID tokens. Tokens are RS256
// JWTs signed by Google's securetoken service; signatures are checked against
// the published JWKS, with issuer and audience tied to the Firebase project.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"docgate/internal/config"
	"docgate/internal/model"
)

// Identity is the caller resolved from a verified ID token. Role is the
// normalized token role claim; it may be empty, in which case the caller's
// profile record is the remaining role source.
type Identity struct {
	UID  string
	Role string
}

var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// expired, wrong issuer/audience, malformed.
	ErrInvalidToken = errors.New("invalid id token")
)

// Verifier validates a raw bearer token and resolves the caller identity.
// A single verification attempt, no retries.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// idTokenClaims are the claims read from a Firebase ID token. Role is the
// portal's custom claim; absent for accounts whose role lives only on the
// profile record.
type idTokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// FirebaseVerifier verifies ID tokens against the securetoken JWKS.
// Safe for concurrent use; the key set refreshes itself in the background.
type FirebaseVerifier struct {
	keys   keyfunc.Keyfunc
	parser *jwt.Parser
}

// NewFirebaseVerifier fetches the JWKS and prepares a parser pinned to the
// project's issuer and audience.
func NewFirebaseVerifier(cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase project id is required")
	}

	keys, err := keyfunc.NewDefault([]string{cfg.JWKSURL})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks %s: %w", cfg.JWKSURL, err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer("https://securetoken.google.com/"+cfg.ProjectID),
		jwt.WithAudience(cfg.ProjectID),
		jwt.WithExpirationRequired(),
	)

	return &FirebaseVerifier{keys: keys, parser: parser}, nil
}

// Verify checks the token signature and standard claims and returns the
// caller identity. The role claim is normalized (trim + lowercase) here so
// downstream policy code never sees raw casing.
func (v *FirebaseVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	claims := &idTokenClaims{}
	token, err := v.parser.ParseWithClaims(rawToken, claims, v.keys.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UID:  claims.Subject,
		Role: model.NormalizeRole(claims.Role),
	}, nil
}
