package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
)

// SetupProfileRoutes configures profile, pickup location and contact routes
func SetupProfileRoutes(app *fiber.App) {
	profile := app.Group("/api/profile", middleware.Protected())

	profile.Get("/get", controllers.GetProfile)
	profile.Put("/update", controllers.UpdateProfile)
	profile.Post("/picture", controllers.UpdateProfilePicture)

	profile.Post("/pickup/post", controllers.CreatePickupLocation)
	profile.Get("/pickup/get", controllers.GetPickupLocations)
	profile.Put("/pickup/update", controllers.UpdatePickupLocation)
	profile.Delete("/pickup/delete/:pk", controllers.DeletePickupLocation)

	profile.Post("/contact/post", controllers.CreateContact)
	profile.Get("/contact/get", controllers.GetContacts)
	profile.Put("/contact/update", controllers.UpdateContact)
	profile.Delete("/contact/delete/:pk", controllers.DeleteContact)
}
