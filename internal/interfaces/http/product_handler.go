package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/dto"
	"github.com/jhoicas/elikia-api/internal/application/view"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct{}

// NewProductHandler construye el handler.
func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

// List godoc
// @Summary      Listar productos
// @Description  Filtro opcional por nombre, sku o categoría sin distinguir acentos ni mayúsculas.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "búsqueda"
// @Success      200  {array}   dto.ProductResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	snap, ok := readySnapshot(c)
	if !ok {
		return notReady(c, snap.State)
	}
	return c.JSON(dto.NewProductList(view.FilterProducts(snap.Products, c.Query("q"))))
}

// Create godoc
// @Summary      Crear producto (ADMIN, GESTOCK)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	out, err := GetSession(c).Store.AddProduct(c.UserContext(), in.ToEntity(""))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProductResponse(out))
}

// Update godoc
// @Summary      Actualizar producto (ADMIN, GESTOCK)
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.ProductRequest  true  "Datos completos del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetSession(c).Store.UpdateProduct(c.UserContext(), in.ToEntity(id))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(out))
}

// Delete godoc
// @Summary      Eliminar producto (ADMIN, GESTOCK)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.OKResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := GetSession(c).Store.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.OKResponse{OK: true})
}
