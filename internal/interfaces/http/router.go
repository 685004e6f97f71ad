package http

import (
	"github.com/gofiber/fiber/v2"

	appinventory "github.com/jhoicas/cafe-pos-api/internal/application/inventory"
	"github.com/jhoicas/cafe-pos-api/internal/application/ordering"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger        *appinventory.StockLedger
	Coordinator   *sales.Coordinator
	ProductUC     *usecase.ProductUseCase
	MenuUC        *usecase.MenuUseCase
	RecipeUC      *usecase.RecipeUseCase
	OrderUC       *ordering.OrderUseCase
	ReceiptUC     *ordering.ReceiptUseCase
	JWTSecret     string
	LowStockLimit int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestContext())

	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC, deps.MenuUC)

	// Kiosco y consulta de órdenes (público)
	kiosk := api.Group("/kiosk")
	kiosk.Get("/menu", orderHandler.KioskMenu)
	kiosk.Post("/orders", orderHandler.CreateKioskOrder)

	orders := api.Group("/orders")
	orders.Get("/:number", orderHandler.GetByNumber)
	orders.Get("/:number/receipt.pdf", orderHandler.Receipt)

	// Rutas protegidas (requieren Bearer Token)
	auth := AuthMiddleware(deps.JWTSecret)

	cashier := api.Group("/cashier", auth, RequireRole(entity.RoleCashier, entity.RoleAdmin))
	cashier.Get("/products", orderHandler.CashierProducts)
	cashier.Post("/orders", orderHandler.CreateCashierOrder)
	cashier.Get("/orders", orderHandler.ListOrders)
	cashier.Patch("/orders", orderHandler.UpdateOrderStatus)

	admin := api.Group("/admin", auth)

	// Inventario (admin, inventory_clerk)
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.LowStockLimit)
	inv := admin.Group("/inventory", RequireRole(entity.RoleAdmin, entity.RoleInventoryClerk))
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Get("/items/:id/movements", inventoryHandler.ListMovements)
	inv.Get("/items/:id/consistency", RequireRole(entity.RoleAdmin), inventoryHandler.Consistency)
	inv.Post("/adjust", inventoryHandler.Adjust)
	inv.Get("/low-stock", inventoryHandler.LowStock)

	// Productos y recetas (admin)
	productHandler := NewProductHandler(deps.ProductUC, deps.MenuUC, deps.Coordinator)
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	products := admin.Group("/products", RequireRole(entity.RoleAdmin))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/availability", productHandler.AvailabilityReport)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/archive", productHandler.Archive)
	products.Post("/:id/restore", productHandler.Restore)
	products.Post("/:id/sell", productHandler.Sell)
	products.Get("/:id/recipe", recipeHandler.Get)
	products.Put("/:id/recipe", recipeHandler.Replace)
	products.Delete("/:id/recipe", recipeHandler.Delete)
}
