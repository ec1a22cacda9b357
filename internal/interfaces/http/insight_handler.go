package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/usecase"
)

// InsightHandler textos de apoyo (análisis y descripciones de producto).
type InsightHandler struct {
	uc *usecase.InsightUseCase
}

// NewInsightHandler construye el handler.
func NewInsightHandler(uc *usecase.InsightUseCase) *InsightHandler {
	return &InsightHandler{uc: uc}
}

// Business godoc
// @Summary      Análisis del negocio
// @Tags         insights
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BusinessInsightRequest  true  "prompt (obligatorio) y contextData"
// @Success      200   {object}  dto.InsightResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/insights/business [post]
func (h *InsightHandler) Business(c *fiber.Ctx) error {
	var req dto.BusinessInsightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	out, err := h.uc.BusinessInsight(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ProductDescription godoc
// @Summary      Descripción de producto
// @Tags         insights
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductDescriptionRequest  true  "productName (obligatorio) y category"
// @Success      200   {object}  dto.InsightResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/insights/product-description [post]
func (h *InsightHandler) ProductDescription(c *fiber.Ctx) error {
	var req dto.ProductDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}
	out, err := h.uc.ProductDescription(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
