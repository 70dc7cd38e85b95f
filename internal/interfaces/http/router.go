package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/roi-admin-api/internal/application/auth"
	"github.com/jhoicas/roi-admin-api/internal/application/inventory"
	"github.com/jhoicas/roi-admin-api/internal/application/usecase"
	"github.com/jhoicas/roi-admin-api/internal/domain/access"
	"github.com/jhoicas/roi-admin-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.StockLedger
	ProductUC *usecase.ProductUseCase
	CatalogUC *usecase.CatalogUseCase
	UserUC    *usecase.UserUseCase
	AuthUC    *auth.AuthUseCase
	JWTSecret string
}

// InventoryRoles roles con acceso al módulo de inventario (admin siempre pasa).
var InventoryRoles = []string{access.RoleRespAdmContable}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), CurrentRoles(deps.UserUC))
	protected.Get("/auth/me", authHandler.Me)

	// Inventario: movimientos, productos y catálogos
	inv := protected.Group("/", RequireRole(InventoryRoles...))

	movements := inv.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	movements.Get("/", inventoryHandler.List)
	movements.Post("/", inventoryHandler.Create)
	movements.Get("/:id", inventoryHandler.GetByID)
	movements.Put("/:id", inventoryHandler.Amend)
	movements.Patch("/:id", inventoryHandler.Amend)
	movements.Delete("/:id", inventoryHandler.Delete)

	products := inv.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	catalogs := map[string]entity.CatalogKind{
		"/brands":           entity.CatalogBrand,
		"/categories":       entity.CatalogCategory,
		"/units-of-measure": entity.CatalogUnitMeasure,
		"/status-types":     entity.CatalogStatusType,
	}
	for path, kind := range catalogs {
		g := inv.Group(path)
		h := NewCatalogHandler(deps.CatalogUC, kind)
		g.Get("/", h.List)
		g.Post("/", h.Create)
		g.Get("/:id", h.GetByID)
		g.Put("/:id", h.Update)
		g.Delete("/:id", h.Delete)
	}
}
