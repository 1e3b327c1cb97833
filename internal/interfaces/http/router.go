package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps handlers y configuración que necesita el router.
type RouterDeps struct {
	JWTSecret string

	Auth         *AuthHandler
	Categories   *CategoryHandler
	Products     *ProductHandler
	Users        *UserHandler
	Transactions *TransactionHandler
	Dashboard    *DashboardHandler
	Export       *ExportHandler
}

// RegisterRoutes monta todas las rutas de la API con sus restricciones de rol.
//
//	admin      — control total
//	contador   — gestión de productos, consulta y reportes
//	bodeguero  — operación de bodega (transacciones de stock)
func RegisterRoutes(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.Auth.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		deps.Auth.Register)

	// Todo lo demás requiere token.
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	accounting := RequireRole(entity.RoleAdmin, entity.RoleContador)

	// Categorías: lectura para todos, escritura solo admin.
	categories := protected.Group("/categories")
	categories.Get("", deps.Categories.List)
	categories.Get("/:id", deps.Categories.GetByID)
	categories.Post("", adminOnly, deps.Categories.Create)
	categories.Put("/:id", adminOnly, deps.Categories.Update)
	categories.Delete("/:id", adminOnly, deps.Categories.Delete)

	// Productos: lectura para todos, escritura para admin y contador.
	products := protected.Group("/products")
	products.Get("", deps.Products.List)
	products.Get("/:id", deps.Products.GetByID)
	products.Post("", accounting, deps.Products.Create)
	products.Put("/:id", accounting, deps.Products.Update)
	products.Delete("/:id", accounting, deps.Products.Delete)

	// Usuarios: /me para cualquier autenticado, el resto solo admin.
	users := protected.Group("/users")
	users.Get("/me", deps.Users.Me)
	users.Get("", adminOnly, deps.Users.List)
	users.Get("/:id", adminOnly, deps.Users.GetByID)
	users.Put("/:id", adminOnly, deps.Users.Update)
	users.Delete("/:id", adminOnly, deps.Users.Delete)

	// Libro de stock: lecturas para todos, mutaciones para bodega,
	// reconstrucción solo admin. Las rutas fijas van antes que /:id.
	transactions := protected.Group("/transactions")
	transactions.Get("", deps.Transactions.List)
	transactions.Get("/recent", deps.Transactions.Recent)
	transactions.Get("/product/:productId", deps.Transactions.ByProduct)
	transactions.Get("/user/:userId", deps.Transactions.ByUser)
	transactions.Post("", warehouse, deps.Transactions.Create)
	transactions.Post("/rebuild/:productId", adminOnly, deps.Transactions.Rebuild)
	transactions.Post("/:id/complete", warehouse, deps.Transactions.Complete)
	transactions.Post("/:id/cancel", warehouse, deps.Transactions.Cancel)
	transactions.Delete("/:id", warehouse, deps.Transactions.Delete)

	// Dashboard y reportes.
	protected.Get("/dashboard", deps.Dashboard.Get)
	protected.Get("/reports/transactions/pdf", accounting, deps.Export.TransactionsPDF)
}
