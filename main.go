package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/usualmarts/sfds-api/cron"
	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/redis"
	"github.com/usualmarts/sfds-api/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	}
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupAuthRoutes(app)
	routes.SetupUserRoutes(app)
	routes.SetupProfileRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupAvailabilityRoutes(app)
	routes.SetupAccountRoutes(app)
	routes.SetupSchoolRoutes(app)

	log.Fatal(app.Listen(":8000"))
}
