package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
	"github.com/usualmarts/sfds-api/models"
)

// SetupSchoolRoutes configures all school related routes
func SetupSchoolRoutes(app *fiber.App) {
	school := app.Group("/api/school", middleware.Protected())

	school.Get("/get", controllers.GetSchools)
	school.Get("/get/:pk", controllers.GetSchoolByID)

	admin := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin)
	school.Post("/create", admin, controllers.CreateSchool)
	school.Put("/update/:pk", admin, controllers.UpdateSchool)
	school.Delete("/delete/:pk", admin, controllers.DeleteSchool)
}
