package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/query"
)

// GetAvailability lists instructor availability. Date filters match within
// ±2 days, time filters within ±30 minutes, so callers find nearby windows.
func GetAvailability(c *fiber.Ctx) error {
	filter := query.AvailabilityFilter{
		InstructorID: optionalUint(c, "instructor_id"),
		StartTime:    optionalString(c, "start_time"),
		EndTime:      optionalString(c, "end_time"),
	}

	if v := c.Query("availability_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid availability_date, expected YYYY-MM-DD"})
		}
		filter.AvailabilityDate = &d
	}

	filtered := func() (*gorm.DB, error) {
		return filter.Apply(db.DB.Model(&models.InstructorAvailability{}))
	}

	countQuery, err := filtered()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	q, err := filtered()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	q, err = query.ApplySort(q, c.Query("sort", "availability_date"), c.Query("order", "asc"), query.AvailabilitySortOptions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	var availability []models.InstructorAvailability
	if err := query.Paginate(q, c.QueryInt("offset", query.DefaultOffset), c.QueryInt("limit", query.DefaultLimit)).
		Find(&availability).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"total_count":  total,
		"availability": availability,
	})
}

type AvailabilityInput struct {
	AvailabilityDate string `json:"availability_date" form:"availability_date"`
	StartTime        string `json:"start_time" form:"start_time"`
	EndTime          string `json:"end_time" form:"end_time"`
}

// CreateAvailability records an open window for the logged-in instructor.
func CreateAvailability(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(AvailabilityInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	availability := models.InstructorAvailability{
		InstructorID: user.ID,
	}
	if input.StartTime != "" {
		st, err := normalizeClock(input.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid start_time, expected HH:MM"})
		}
		availability.StartTime = st
	}
	if input.EndTime != "" {
		et, err := normalizeClock(input.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid end_time, expected HH:MM"})
		}
		availability.EndTime = et
	}
	if input.AvailabilityDate != "" {
		d, err := time.Parse("2006-01-02", input.AvailabilityDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid availability_date, expected YYYY-MM-DD"})
		}
		availability.AvailabilityDate = &d
	}

	if err := db.DB.Create(&availability).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(availability)
}

type AvailabilityUpdateInput struct {
	AvailabilityDate *string `json:"availability_date" form:"availability_date"`
	StartTime        *string `json:"start_time" form:"start_time"`
	EndTime          *string `json:"end_time" form:"end_time"`
}

// UpdateAvailability replaces only the supplied fields on an availability
// window owned by the caller.
func UpdateAvailability(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var availability models.InstructorAvailability
	if err := db.DB.First(&availability, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Availability not found"})
	}

	if availability.InstructorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You are not authorized to update this availability"})
	}

	input := new(AvailabilityUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	updates := map[string]interface{}{}
	if input.AvailabilityDate != nil {
		d, err := time.Parse("2006-01-02", *input.AvailabilityDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid availability_date, expected YYYY-MM-DD"})
		}
		updates["availability_date"] = d
	}
	if input.StartTime != nil {
		st, err := normalizeClock(*input.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid start_time, expected HH:MM"})
		}
		updates["start_time"] = st
	}
	if input.EndTime != nil {
		et, err := normalizeClock(*input.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid end_time, expected HH:MM"})
		}
		updates["end_time"] = et
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&availability).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Availability updated successfully"})
}

// DeleteAvailability removes an availability window owned by the caller.
func DeleteAvailability(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var availability models.InstructorAvailability
	if err := db.DB.First(&availability, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Availability not found"})
	}

	if availability.InstructorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You are not authorized to delete this availability"})
	}

	if err := db.DB.Delete(&availability).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Availability deleted successfully"})
}
