package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"docgate/internal/auth"
	"docgate/internal/http/middleware"
	"docgate/internal/repository"
	"docgate/internal/service"
)

// accessRequestBody is the JSON body of POST /document-access.
type accessRequestBody struct {
	DocumentID string `json:"documentId"`
	Mode       string `json:"mode"`
}

// accessResponse is the granted response body.
type accessResponse struct {
	Success   bool   `json:"success"`
	URL       string `json:"url"`
	ExpiresAt *int64 `json:"expiresAt"`
	SizeBytes int64  `json:"sizeBytes"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, verifier auth.Verifier, docRepo repository.DocumentRepository, accessSvc service.DocumentAccessService) {
	// Readiness: checks Firestore connectivity only
	app.Get("/health", HealthCheck(docRepo))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// The gateway's single business route. OPTIONS preflights are answered
	// by the CORS middleware before routing.
	app.Post("/document-access", middleware.Auth(verifier), GetDocumentAccess(accessSvc))
}

// HealthCheck reports whether the backing store is reachable.
func HealthCheck(docRepo repository.DocumentRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := docRepo.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "Servicio no disponible")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// GetDocumentAccess resolves a time-limited URL for a protected document.
//
// @Summary Obtain temporary access to a document
// @Description Decides whether the authenticated caller may view or download the document and returns a time-limited URL.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body accessRequestBody true "document id and optional mode (view|download)"
// @Success 200 {object} accessResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Security BearerAuth
// @Router /document-access [post]
func GetDocumentAccess(accessSvc service.DocumentAccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := middleware.IdentityFromCtx(c)
		if ident == nil {
			return writeError(c, fiber.StatusUnauthorized, "Token de autorizacion requerido")
		}

		body := accessRequestBody{}
		// An unparseable body is indistinguishable from a missing documentId.
		_ = c.BodyParser(&body)

		grant, err := accessSvc.Access(c.UserContext(), *ident, service.AccessRequest{
			DocumentID: body.DocumentID,
			Mode:       body.Mode,
		})
		if err != nil {
			return translateAccessError(c, err)
		}

		return c.JSON(accessResponse{
			Success:   true,
			URL:       grant.URL,
			ExpiresAt: grant.ExpiresAt,
			SizeBytes: grant.SizeBytes,
		})
	}
}

// translateAccessError maps service sentinels onto the portal's fixed
// status/message table. Anything unrecognized is logged server-side and
// answered with the generic 500 message.
func translateAccessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrDocumentIDRequired):
		return writeError(c, fiber.StatusBadRequest, "documentId es obligatorio")
	case errors.Is(err, service.ErrRoleUnresolved):
		return writeError(c, fiber.StatusForbidden, "No se pudo resolver el rol del usuario")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "Documento no encontrado")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "No tienes permisos para acceder a este documento")
	case errors.Is(err, service.ErrPathUnresolved):
		return writeError(c, fiber.StatusUnprocessableEntity, "No se pudo resolver la ruta del archivo")
	case errors.Is(err, service.ErrFileGone):
		return writeError(c, fiber.StatusNotFound, "El archivo ya no esta disponible")
	default:
		rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
		slog.Error("document access failed",
			slog.String("request_id", rid),
			slog.String("error", err.Error()))
		return writeError(c, fiber.StatusInternalServerError, "No se pudo generar acceso temporal al documento")
	}
}
