package helpers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error kinds returned by the service functions. Handlers translate them
// into HTTP statuses in one place via HandleServiceError; the messages are
// the user-visible ones the site shows.
var (
	ErrUnauthenticated = errors.New("você precisa estar logado")
	ErrForbidden       = errors.New("você não tem permissão para fazer isso")
	ErrNotFound        = errors.New("registro não encontrado")
	ErrUploadFailed    = errors.New("falha ao fazer upload da imagem")
	ErrValidation      = errors.New("dados inválidos")
)

// HandleServiceError maps a service error kind to the matching HTTP status
// and response envelope.
func HandleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return HandleError(c, fiber.StatusUnauthorized, "Você precisa estar logado", err)
	case errors.Is(err, ErrForbidden):
		return HandleError(c, fiber.StatusForbidden, "Você não tem permissão para fazer isso", err)
	case errors.Is(err, ErrNotFound):
		return HandleError(c, fiber.StatusNotFound, "Registro não encontrado", err)
	case errors.Is(err, ErrValidation):
		return HandleError(c, fiber.StatusBadRequest, "Dados inválidos", err)
	case errors.Is(err, ErrUploadFailed):
		return HandleError(c, fiber.StatusInternalServerError, "Falha ao fazer upload da imagem", err)
	default:
		return HandleError(c, fiber.StatusInternalServerError, "Erro interno", err)
	}
}
