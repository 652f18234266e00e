package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/api/appointment", middleware.Protected())

	appointment.Get("/get", controllers.GetAppointments)
	appointment.Post("/post", controllers.RequestAppointment)
	appointment.Put("/update", controllers.UpdateAppointment)
	appointment.Delete("/delete/:pk", controllers.DeleteAppointment)
	appointment.Put("/approve", controllers.ApproveAppointment)
}
