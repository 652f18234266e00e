package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
	"github.com/usualmarts/sfds-api/models"
)

// SetupAvailabilityRoutes configures instructor availability routes
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/api/availability", middleware.Protected())

	availability.Get("/get", controllers.GetAvailability)

	instructor := middleware.RequireRoles(models.RoleInstructor)
	availability.Post("/post", instructor, controllers.CreateAvailability)
	availability.Put("/update/:pk", instructor, controllers.UpdateAvailability)
	availability.Delete("/delete/:pk", instructor, controllers.DeleteAvailability)
}
