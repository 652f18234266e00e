package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/controllers"
	"github.com/usualmarts/sfds-api/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Get("/verify", controllers.Verify)
	auth.Post("/token/refresh-token", controllers.RefreshToken)

	// Password recovery
	auth.Get("/password/forget", controllers.ForgetPassword)
	auth.Post("/password/verify-otp", controllers.VerifyOTP)
	auth.Post("/password/reset", controllers.ResetPassword)

	// Protected routes
	auth.Post("/password/change", middleware.Protected(), controllers.ChangePassword)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
