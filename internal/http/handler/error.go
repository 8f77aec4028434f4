package handler

import (
	"github.com/gofiber/fiber/v2"
)

// errorResponse is the fixed error body shape of the portal API.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError writes the portal's standardized JSON error response. Messages
// are the fixed user-facing strings; internal error details never leak here.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Success: false, Error: message})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for everything the route handlers did not translate themselves.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "Metodo no permitido")
		case fiber.StatusNotFound:
			return writeError(c, status, "Recurso no encontrado")
		default:
			return writeError(c, status, "Error interno del servidor")
		}
	}
}
