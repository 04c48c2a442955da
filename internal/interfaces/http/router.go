package http

import (
	"github.com/gofiber/fiber/v2"
	appinv "github.com/jhoicas/tienda-stock-api/internal/application/inventory"
	"github.com/jhoicas/tienda-stock-api/internal/application/usecase"
	"github.com/jhoicas/tienda-stock-api/internal/domain/repository"
	"github.com/jhoicas/tienda-stock-api/internal/infrastructure/export"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	ReplaceVariants *appinv.ReplaceVariantsUseCase
	Engine          *appinv.ApplyMovementUseCase
	ReportUC        *usecase.ReportUseCase
	SizeRepo        repository.SizeRepository
	CSVDelimiter    export.Delimiter
	JWTSecret       string
}

// Router registra las rutas de la API. Todo /api va detrás del Bearer Token
// (los tokens los emite el servicio de auth externo).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Tallas (catálogo de referencia)
	sizeHandler := NewSizeHandler(deps.SizeRepo)
	api.Get("/sizes", sizeHandler.List)

	// Productos y variantes
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ReplaceVariants)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/active", productHandler.SetActive)
	products.Patch("/:id/stock", productHandler.OverrideStock)
	products.Get("/:id/variants", productHandler.ListVariants)
	products.Put("/:id/variants", productHandler.ReplaceVariants)

	// Motor de movimientos e historial
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.ReportUC)
	api.Post("/inventory/movements", inventoryHandler.ApplyMovement)
	api.Get("/movements", inventoryHandler.ListMovements)
	api.Post("/checkout/reserve", inventoryHandler.ReserveStock)

	// Exportaciones
	exportHandler := NewExportHandler(deps.ReportUC, deps.CSVDelimiter)
	exports := api.Group("/export")
	exports.Get("/movements.csv", exportHandler.MovementsCSV)
	exports.Get("/products.csv", exportHandler.ProductsCSV)
	exports.Get("/inventory.zip", exportHandler.InventoryZip)
	exports.Get("/low-stock.pdf", exportHandler.LowStockPDF)
}
