package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

// errorStatus traduce los sentinels de dominio a status HTTP y código legible por máquina.
// Lo desconocido es 500 con mensaje genérico (el detalle queda en el log).
func errorStatus(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas o sesión cerrada"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un registro con esos datos"}
	case errors.Is(err, domain.ErrNotReady):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "NOT_READY", Message: "los datos aún se están cargando"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	}

	kind := domain.Classify(err)
	switch kind {
	case domain.FailurePermissionDenied:
		return fiber.StatusForbidden, dto.ErrorResponse{Code: string(kind), Message: kind.Message()}
	case domain.FailureMissingSchema, domain.FailureConfigurationMissing:
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: string(kind), Message: kind.Message()}
	case domain.FailureUnreachable:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: string(kind), Message: kind.Message()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// ErrorHandler handler de errores de Fiber: los handlers devuelven los errores del Store tal
// cual y aquí se traducen. Registra los 5xx.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		if errors.Is(err, context.Canceled) {
			return c.SendStatus(fiber.StatusRequestTimeout)
		}
		status, body := errorStatus(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Int("status", status).Msg("error en petición")
		} else {
			log.Debug().Err(err).Str("path", c.Path()).Int("status", status).Msg("petición rechazada")
		}
		return c.Status(status).JSON(body)
	}
}
