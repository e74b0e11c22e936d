package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias necesarias para montar las rutas.
type RouterDeps struct {
	Auth      *AuthHandler
	Inventory *InventoryHandler
	Reports   *ReportHandler
	JWTSecret string
}

// SetupRoutes monta las rutas de la API sobre la app. El login es público;
// todo lo demás exige un token Bearer válido.
func SetupRoutes(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Post("/auth/login", deps.Auth.Login)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	inv := protected.Group("/inventory")
	inv.Post("/entries", deps.Inventory.RegisterEntry)
	inv.Post("/cart/scan", deps.Inventory.ScanCart)
	inv.Get("/cart", deps.Inventory.GetCart)
	inv.Delete("/cart", deps.Inventory.ClearCart)
	inv.Post("/cart/commit", deps.Inventory.CommitCart)
	inv.Get("/", deps.Inventory.ListInventory)
	inv.Get("/:code/stock", deps.Inventory.GetStock)

	protected.Get("/products", deps.Inventory.ListProducts)

	reports := protected.Group("/reports")
	reports.Get("/movements", deps.Reports.Movements)
	reports.Get("/movements/xlsx", deps.Reports.ExportMovements)
	reports.Get("/stock-levels", deps.Reports.StockLevels)
	reports.Get("/stock-levels/pdf", deps.Reports.StockLevelsPDF)
	reports.Get("/expiry-alerts", deps.Reports.ExpiryAlerts)
}
