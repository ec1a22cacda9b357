package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/elikia-api/internal/application/session"
	"github.com/jhoicas/elikia-api/internal/application/usecase"
	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sessions  *session.Manager
	Renderer  *view.Renderer
	InsightUC *usecase.InsightUseCase
	Auth      AuthConfig
}

// Router registra las rutas de la API. La app debe crearse con ErrorHandler.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	sessionHandler := NewSessionHandler(deps.Sessions, deps.Auth)
	api.Post("/auth/login", sessionHandler.Login)

	// Rutas protegidas: Bearer Token + sesión viva
	protected := api.Group("/", AuthMiddleware(deps.Auth.Secret), SessionMiddleware(deps.Sessions))
	protected.Post("/auth/logout", sessionHandler.Logout)

	sessions := protected.Group("/session")
	sessions.Get("/", sessionHandler.Current)
	sessions.Post("/reload", sessionHandler.Reload)
	sessions.Post("/navigate", sessionHandler.Navigate)

	// Vistas
	viewHandler := NewViewHandler(deps.Renderer)
	views := protected.Group("/views")
	views.Get("/current", viewHandler.Current)
	views.Get("/:key", viewHandler.Get)

	admin := RequireRole(string(entity.RoleAdmin))
	stockWriters := RequireRole(string(entity.RoleAdmin), string(entity.RoleGestock))

	// Configuración (escritura solo ADMIN)
	settingsHandler := NewSettingsHandler()
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", admin, settingsHandler.Update)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler()
	products.Get("/", productHandler.List)
	products.Post("/", stockWriters, productHandler.Create)
	products.Put("/:id", stockWriters, productHandler.Update)
	products.Delete("/:id", stockWriters, productHandler.Delete)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler()
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", stockWriters, supplierHandler.Create)
	suppliers.Put("/:id", stockWriters, supplierHandler.Update)
	suppliers.Delete("/:id", stockWriters, supplierHandler.Delete)

	// Ventas (solo lectura)
	protected.Get("/transactions", NewTransactionHandler().List)

	// Insights
	insightHandler := NewInsightHandler(deps.InsightUC)
	insights := protected.Group("/insights")
	insights.Post("/business", insightHandler.Business)
	insights.Post("/product-description", insightHandler.ProductDescription)
}
