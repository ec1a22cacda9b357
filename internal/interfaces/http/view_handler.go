package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/session"
	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain"
)

// ViewHandler renderiza las vistas a partir de los datos cargados en la sesión.
type ViewHandler struct {
	renderer *view.Renderer
}

// NewViewHandler construye el handler.
func NewViewHandler(renderer *view.Renderer) *ViewHandler {
	return &ViewHandler{renderer: renderer}
}

// Current godoc
// @Summary      Vista actual
// @Tags         views
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "filtro de productos (inventory)"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/views/current [get]
func (h *ViewHandler) Current(c *fiber.Ctx) error {
	return h.render(c, GetSession(c).CurrentView())
}

// Get godoc
// @Summary      Renderizar una vista
// @Description  dashboard, reports, settings, pos, inventory o suppliers. Una clave desconocida
//               responde 204 sin cuerpo.
// @Tags         views
// @Security     Bearer
// @Produce      json
// @Param        key  path   string  true   "clave de la vista"
// @Param        q    query  string  false  "filtro de productos (inventory)"
// @Success      200  {object}  map[string]interface{}
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/views/{key} [get]
func (h *ViewHandler) Get(c *fiber.Ctx) error {
	return h.render(c, c.Params("key"))
}

func (h *ViewHandler) render(c *fiber.Ctx, key string) error {
	if !view.Exists(key) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	snap, ok := readySnapshot(c)
	if !ok {
		return notReady(c, snap.State)
	}
	out, _ := h.renderer.Render(key, view.Data{
		Settings:     snap.Settings,
		Suppliers:    snap.Suppliers,
		Products:     snap.Products,
		Transactions: snap.Transactions,
	}, view.Options{Query: c.Query("q")})
	return c.JSON(out)
}

// readySnapshot copia de los datos de la sesión; ok=false si aún no están listos.
func readySnapshot(c *fiber.Ctx) (session.Snapshot, bool) {
	snap := GetSession(c).Store.Snapshot()
	return snap, snap.State.Phase == session.PhaseReady
}

// notReady 409 mientras carga; si la carga falló, el status según la clase de fallo.
func notReady(c *fiber.Ctx, st session.State) error {
	if st.Phase != session.PhaseFailed {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "NOT_READY",
			Message: "los datos aún no están listos (" + string(st.Phase) + ")",
		})
	}
	status := fiber.StatusServiceUnavailable
	switch st.Failure {
	case domain.FailurePermissionDenied:
		status = fiber.StatusForbidden
	case domain.FailureUnreachable:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: string(st.Failure), Message: st.Message})
}
