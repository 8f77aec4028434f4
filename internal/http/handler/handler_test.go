package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docgate/internal/auth"
	"docgate/internal/http/middleware"
	repoMocks "docgate/internal/repository/mocks"
	"docgate/internal/service"
	serviceMocks "docgate/internal/service/mocks"
)

// injectIdentity stands in for the Auth middleware in handler tests.
func injectIdentity(ident *auth.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.IdentityLocalKey, ident)
		return c.Next()
	}
}

func accessApp(svc service.DocumentAccessService, ident *auth.Identity) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/document-access", injectIdentity(ident), GetDocumentAccess(svc))
	return app
}

func postAccess(t *testing.T, app *fiber.App, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/document-access", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		docRepo := new(repoMocks.MockDocumentRepository)
		docRepo.On("Ping", mock.Anything).Return(nil)

		app := fiber.New()
		app.Get("/health", HealthCheck(docRepo))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "healthy", decodeBody(t, resp)["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		docRepo := new(repoMocks.MockDocumentRepository)
		docRepo.On("Ping", mock.Anything).Return(errors.New("firestore unreachable"))

		app := fiber.New()
		app.Get("/health", HealthCheck(docRepo))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "Servicio no disponible", decodeBody(t, resp)["error"])
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetDocumentAccessGranted(t *testing.T) {
	ident := &auth.Identity{UID: "u1", Role: "docente"}
	mockSvc := new(serviceMocks.MockDocumentAccessService)
	expiresAt := int64(1765432100000)
	mockSvc.On("Access", mock.Anything, *ident, service.AccessRequest{DocumentID: "doc-1", Mode: "view"}).
		Return(&service.AccessGrant{URL: "https://signed.example/u", ExpiresAt: &expiresAt, SizeBytes: 2048}, nil)

	app := accessApp(mockSvc, ident)
	resp := postAccess(t, app, map[string]any{"documentId": "doc-1", "mode": "view"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://signed.example/u", body["url"])
	assert.Equal(t, float64(1765432100000), body["expiresAt"])
	assert.Equal(t, float64(2048), body["sizeBytes"])
	mockSvc.AssertExpectations(t)
}

func TestGetDocumentAccessLegacyGrantHasNullExpiry(t *testing.T) {
	ident := &auth.Identity{UID: "u1", Role: "docente"}
	mockSvc := new(serviceMocks.MockDocumentAccessService)
	mockSvc.On("Access", mock.Anything, *ident, mock.Anything).
		Return(&service.AccessGrant{URL: "https://legacy.example/u", ExpiresAt: nil, SizeBytes: 0}, nil)

	app := accessApp(mockSvc, ident)
	resp := postAccess(t, app, map[string]any{"documentId": "doc-1"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["expiresAt"])
}

func TestGetDocumentAccessErrorTable(t *testing.T) {
	ident := &auth.Identity{UID: "u1", Role: "family"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing document id",
			err:        service.ErrDocumentIDRequired,
			wantStatus: http.StatusBadRequest,
			wantError:  "documentId es obligatorio",
		},
		{
			name:       "role unresolved",
			err:        service.ErrRoleUnresolved,
			wantStatus: http.StatusForbidden,
			wantError:  "No se pudo resolver el rol del usuario",
		},
		{
			name:       "document not found",
			err:        service.ErrDocumentNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Documento no encontrado",
		},
		{
			name:       "forbidden",
			err:        service.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantError:  "No tienes permisos para acceder a este documento",
		},
		{
			name:       "path unresolved",
			err:        service.ErrPathUnresolved,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "No se pudo resolver la ruta del archivo",
		},
		{
			name:       "file gone",
			err:        service.ErrFileGone,
			wantStatus: http.StatusNotFound,
			wantError:  "El archivo ya no esta disponible",
		},
		{
			name:       "unexpected error",
			err:        errors.New("firestore deadline exceeded"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "No se pudo generar acceso temporal al documento",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockDocumentAccessService)
			mockSvc.On("Access", mock.Anything, *ident, mock.Anything).Return(nil, tt.err)

			app := accessApp(mockSvc, ident)
			resp := postAccess(t, app, map[string]any{"documentId": "doc-1"})

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeBody(t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestGetDocumentAccessWithoutIdentity(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentAccessService)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/document-access", GetDocumentAccess(mockSvc))

	resp := postAccess(t, app, map[string]any{"documentId": "doc-1"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	mockSvc.AssertNotCalled(t, "Access", mock.Anything, mock.Anything, mock.Anything)
}

func TestMethodNotAllowed(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentAccessService)
	app := accessApp(mockSvc, &auth.Identity{UID: "u1"})

	req := httptest.NewRequest(http.MethodGet, "/document-access", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Metodo no permitido", decodeBody(t, resp)["error"])
}
