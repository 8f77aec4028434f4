package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"docgate/internal/auth"
	"docgate/internal/config"
	"docgate/internal/model"
	"docgate/internal/repository"
	"docgate/internal/storage"
)

// Sentinel errors translated by the HTTP handler into the portal's fixed
// status/message table.
var (
	ErrDocumentIDRequired = errors.New("document id is required")
	ErrRoleUnresolved     = errors.New("could not resolve caller role")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrForbidden          = errors.New("access to document denied")
	ErrPathUnresolved     = errors.New("storage path could not be resolved")
	ErrFileGone           = errors.New("file is no longer available")
)

// Access outcome metrics, one counter increment per request.
var (
	accessRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docgate_access_requests_total",
		Help: "Document access requests by outcome.",
	}, []string{"outcome"})

	accessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "docgate_access_duration_seconds",
		Help:    "End-to-end duration of document access decisions.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
	})
)

// AccessRequest is the caller's request for a document grant. Mode defaults
// to view; download must be asked for explicitly.
type AccessRequest struct {
	DocumentID string
	Mode       string
}

// AccessGrant is the ephemeral result of a granted request. ExpiresAt is an
// epoch-millisecond timestamp, or nil for legacy public URLs that never
// expire. Grants are never persisted.
type AccessGrant struct {
	URL       string `json:"url"`
	ExpiresAt *int64 `json:"expiresAt"`
	SizeBytes int64  `json:"sizeBytes"`
}

// DocumentAccessService decides whether a verified caller may obtain a
// time-limited URL for a protected document, and produces that URL.
type DocumentAccessService interface {
	Access(ctx context.Context, ident auth.Identity, req AccessRequest) (*AccessGrant, error)
}

// accessService is the concrete implementation. Every decision is recomputed
// per request; there is no role or scope cache.
type accessService struct {
	docs          repository.DocumentRepository
	children      repository.ChildRepository
	users         repository.UserRepository
	store         storage.ObjectStore
	cfg           config.AccessConfig
	defaultBucket string
	logger        *slog.Logger
	now           func() time.Time
}

// NewDocumentAccessService constructs the access service.
func NewDocumentAccessService(
	docs repository.DocumentRepository,
	children repository.ChildRepository,
	users repository.UserRepository,
	store storage.ObjectStore,
	cfg config.AccessConfig,
	defaultBucket string,
	logger *slog.Logger,
) DocumentAccessService {
	return &accessService{
		docs:          docs,
		children:      children,
		users:         users,
		store:         store,
		cfg:           cfg,
		defaultBucket: defaultBucket,
		logger:        logger.With(slog.String("component", "access_service")),
		now:           time.Now,
	}
}

// Access runs the full pipeline, one stage at a time: role resolution,
// document lookup with storage location resolution, authorization, delivery.
// Each stage short-circuits with its own sentinel; no stage retries another.
func (s *accessService) Access(ctx context.Context, ident auth.Identity, req AccessRequest) (*AccessGrant, error) {
	start := time.Now()
	outcome := "error"
	defer func() {
		accessRequestsTotal.WithLabelValues(outcome).Inc()
		accessDuration.Observe(time.Since(start).Seconds())
	}()

	role, err := s.resolveRole(ctx, ident)
	if err != nil {
		if errors.Is(err, ErrRoleUnresolved) {
			outcome = "role_unresolved"
		}
		return nil, err
	}
	ident.Role = role

	if strings.TrimSpace(req.DocumentID) == "" {
		outcome = "bad_request"
		return nil, ErrDocumentIDRequired
	}

	doc, err := s.docs.FindByID(ctx, req.DocumentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			outcome = "not_found"
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	key, err := resolveStoragePath(doc)
	if err != nil {
		outcome = "path_unresolved"
		return nil, err
	}
	bucket := resolveBucket(doc)
	if bucket == "" {
		bucket = s.defaultBucket
	}

	if err := s.authorize(ctx, ident, doc); err != nil {
		if errors.Is(err, ErrForbidden) {
			outcome = "denied"
		}
		return nil, err
	}

	grant, err := s.deliver(ctx, doc, bucket, key, parseMode(req.Mode))
	if err != nil {
		if errors.Is(err, ErrFileGone) {
			outcome = "gone"
		}
		return nil, err
	}

	if grant.ExpiresAt == nil {
		outcome = "granted_legacy"
	} else {
		outcome = "granted"
	}
	return grant, nil
}

// resolveRole prefers the token's role claim and falls back to the caller's
// profile record. An empty role after both sources is unauthorized.
func (s *accessService) resolveRole(ctx context.Context, ident auth.Identity) (string, error) {
	if ident.Role != "" {
		return ident.Role, nil
	}

	profile, err := s.users.FindByID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRoleUnresolved
		}
		return "", fmt.Errorf("while resolving role for %q: %w", ident.UID, err)
	}

	role := model.NormalizeRole(profile.Role)
	if role == "" {
		return "", ErrRoleUnresolved
	}
	return role, nil
}
