package routes

import (
	"github.com/samiarebeca/coleta-inteligente/handlers"
	"github.com/samiarebeca/coleta-inteligente/middleware"
	"github.com/samiarebeca/coleta-inteligente/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/register", handlers.HandleRegister)
	auth.Post("/login", handlers.HandleLogin)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.Authenticate, middleware.CheckRole(utils.RoleAdmin))

	// Dashboard
	admin.Get("/dashboard/summary", handlers.HandleGetDashboardSummary)

	// User Management
	admin.Get("/users", handlers.HandleListUsers)
	admin.Get("/users/:userId", handlers.HandleGetUserByID)
	admin.Put("/users/:userId", handlers.HandleUpdateUser)
	admin.Put("/users/:userId/status", handlers.HandleSetUserStatus)
	admin.Delete("/users/:userId", handlers.HandleDeleteUser)

	// Monthly Goals
	admin.Get("/goals", handlers.HandleListGoals)
	admin.Post("/goals", handlers.HandleUpsertGoal)
	admin.Delete("/goals/:goalId", handlers.HandleDeleteGoal)

	// Reports & Exports
	admin.Get("/reports/monthly", handlers.HandleGetMonthlyReport)
	admin.Get("/reports/monthly/export/csv", handlers.HandleExportSalesCSV)
	admin.Post("/reports/monthly/insights", handlers.HandleGetReportInsights)

	// --- Materials Catalog ---
	materials := api.Group("/materials", middleware.Authenticate)
	materials.Get("/", handlers.HandleListMaterials)
	materials.Get("/:materialId", handlers.HandleGetMaterialByID)
	materials.Get("/:materialId/subclassifications", handlers.HandleListSubclassifications)
	materials.Post("/", middleware.CheckRole(utils.RoleAdmin), handlers.HandleCreateMaterial)
	materials.Put("/:materialId", middleware.CheckRole(utils.RoleAdmin), handlers.HandleUpdateMaterial)
	materials.Delete("/:materialId", middleware.CheckRole(utils.RoleAdmin), handlers.HandleDeleteMaterial)
	materials.Post("/:materialId/subclassifications", middleware.CheckRole(utils.RoleAdmin), handlers.HandleCreateSubclassification)

	// --- Buyers ---
	buyers := api.Group("/buyers", middleware.Authenticate, middleware.CheckRole(utils.RoleAdmin, utils.RoleSales))
	buyers.Get("/", handlers.HandleListBuyers)
	buyers.Get("/:buyerId", handlers.HandleGetBuyerByID)
	buyers.Post("/", handlers.HandleCreateBuyer)
	buyers.Put("/:buyerId", handlers.HandleUpdateBuyer)
	buyers.Delete("/:buyerId", handlers.HandleDeleteBuyer)

	// --- Collection Routes ---
	collectionRoutes := api.Group("/routes", middleware.Authenticate)
	collectionRoutes.Get("/", handlers.HandleListRoutes)
	collectionRoutes.Get("/:routeId", handlers.HandleGetRouteByID)
	collectionRoutes.Post("/", middleware.CheckRole(utils.RoleAdmin), handlers.HandleCreateRoute)
	collectionRoutes.Put("/:routeId", middleware.CheckRole(utils.RoleAdmin), handlers.HandleUpdateRoute)
	collectionRoutes.Post("/:routeId/clients", middleware.CheckRole(utils.RoleAdmin), handlers.HandleCreateClient)
	collectionRoutes.Get("/:routeId/clients", handlers.HandleListClients)

	// --- Route Collections (driver runs) ---
	collections := api.Group("/collections", middleware.Authenticate, middleware.CheckRole(utils.RoleDriver, utils.RoleAdmin))
	collections.Get("/", handlers.HandleListMyCollections)
	collections.Post("/", handlers.HandleStartRouteCollection)
	collections.Put("/:collectionId/points/:pointId", handlers.HandleUpdatePointStatus)
	collections.Put("/:collectionId/finish", handlers.HandleFinishRouteCollection)

	// --- Entries (scale intake) ---
	entries := api.Group("/entries", middleware.Authenticate, middleware.CheckRole(utils.RoleOperator, utils.RoleAdmin))
	entries.Get("/", handlers.HandleListEntries)
	entries.Post("/", handlers.HandleCreateEntry)
	entries.Delete("/:entryId", handlers.HandleDeleteEntry)

	// --- Sales ---
	sales := api.Group("/sales", middleware.Authenticate, middleware.CheckRole(utils.RoleSales, utils.RoleAdmin))
	sales.Get("/", handlers.HandleListSales)
	sales.Post("/", handlers.HandleCreateSale)
}
