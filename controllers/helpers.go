package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
)

// currentUser loads the authenticated user for handlers behind Protected().
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "No authentication token")
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return &user, nil
}

// currentProfile loads the authenticated user together with their profile.
func currentProfile(c *fiber.Ctx) (*models.User, *models.Profile, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, nil, err
	}

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}
	return user, &profile, nil
}

// normalizeClock validates an "HH:MM" value and returns it zero-padded.
// Stored times are compared as text, so "9:00" must become "09:00" before it
// reaches the database.
func normalizeClock(v string) (string, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}

// fail renders a fiber.Error the way every other error is rendered, with a
// detail string.
func fail(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
}
