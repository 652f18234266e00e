package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
	"github.com/usualmarts/sfds-api/models"
)

// SetupAccountRoutes configures the transaction ledger routes
func SetupAccountRoutes(app *fiber.App) {
	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleCSR)
	account := app.Group("/api/account", middleware.Protected(), staff)

	account.Get("/get", controllers.GetTransactions)
	account.Post("/post", controllers.CreateTransaction)
	account.Put("/update", controllers.UpdateTransaction)
	account.Patch("/delete/:transaction_id", controllers.DeleteTransaction)
}
