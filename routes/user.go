package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
	"github.com/usualmarts/sfds-api/models"
)

// SetupUserRoutes configures all user management routes
func SetupUserRoutes(app *fiber.App) {
	user := app.Group("/api/user")

	// Public: staff-created students land here from the emailed link
	user.Post("/verify/password", controllers.VerifyAndSetPassword)

	user.Post("/verifies", middleware.Protected(), controllers.ResendVerification)

	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleCSR)
	user.Get("/get", middleware.Protected(), staff, controllers.GetUsers)
	user.Get("/get/:pk", middleware.Protected(), staff, controllers.GetUserByID)
	user.Patch("/update/role/:pk", middleware.Protected(), staff, controllers.UpdateUserRole)
	user.Put("/post", middleware.Protected(), staff, controllers.CreateUserAdmin)
	user.Delete("/delete/:pk", middleware.Protected(), staff, controllers.DeleteUser)
}
