package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
)

// TransactionHandler historial de ventas (solo lectura).
type TransactionHandler struct{}

func NewTransactionHandler() *TransactionHandler {
	return &TransactionHandler{}
}

// List godoc
// @Summary      Listar ventas
// @Description  Más reciente primero.
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.TransactionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	snap, ok := readySnapshot(c)
	if !ok {
		return notReady(c, snap.State)
	}
	return c.JSON(dto.NewTransactionList(snap.Transactions))
}
