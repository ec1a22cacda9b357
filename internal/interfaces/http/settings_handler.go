package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
)

// SettingsHandler configuración de la tienda.
type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// Get godoc
// @Summary      Configuración de la tienda
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreSettingsDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	snap, ok := readySnapshot(c)
	if !ok {
		return notReady(c, snap.State)
	}
	return c.JSON(dto.NewStoreSettingsDTO(snap.Settings))
}

// Update godoc
// @Summary      Actualizar configuración (ADMIN)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StoreSettingsDTO  true  "configuración"
// @Success      200   {object}  dto.StoreSettingsDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.StoreSettingsDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := GetSession(c).Store.UpdateSettings(c.UserContext(), in.ToEntity())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStoreSettingsDTO(out))
}
