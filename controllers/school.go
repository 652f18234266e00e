package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/query"
)

type SchoolInput struct {
	Name        string   `json:"name" form:"name"`
	Description string   `json:"description" form:"description"`
	Address     string   `json:"address" form:"address"`
	Latitude    *float64 `json:"latitude" form:"latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude"`
	Zipcode     string   `json:"zipcode" form:"zipcode"`
}

// CreateSchool registers a new school. Names are unique.
func CreateSchool(c *fiber.Ctx) error {
	input := new(SchoolInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if input.Name == "" || input.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "name and description are required"})
	}

	var existing models.School
	if db.DB.Where("name = ?", input.Name).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "School already exist"})
	}

	school := models.School{
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Zipcode:     input.Zipcode,
	}

	if err := db.DB.Create(&school).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "School created successfully"})
}

// GetSchools lists schools that are not soft-deleted.
func GetSchools(c *fiber.Ctx) error {
	live := db.DB.Model(&models.School{}).Where("is_deleted = ?", false)

	var total int64
	if err := live.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	var schools []models.School
	if err := query.Paginate(db.DB.Where("is_deleted = ?", false), c.QueryInt("offset", query.DefaultOffset), c.QueryInt("limit", query.DefaultLimit)).
		Find(&schools).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"total_count": total,
		"school":      schools,
	})
}

// GetSchoolByID returns one school; soft-deleted schools read as absent.
func GetSchoolByID(c *fiber.Ctx) error {
	var school models.School
	if err := db.DB.First(&school, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "School not found"})
	}
	if school.IsDeleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "School not found"})
	}
	return c.JSON(school)
}

// UpdateSchool replaces the mutable attributes of a school.
func UpdateSchool(c *fiber.Ctx) error {
	var school models.School
	if err := db.DB.First(&school, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "School not found"})
	}

	input := new(SchoolInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	err := db.DB.Model(&school).Updates(map[string]interface{}{
		"name":        input.Name,
		"description": input.Description,
		"address":     input.Address,
		"latitude":    input.Latitude,
		"longitude":   input.Longitude,
		"zipcode":     input.Zipcode,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "School updated successfully"})
}

// DeleteSchool soft-deletes a school.
func DeleteSchool(c *fiber.Ctx) error {
	var school models.School
	if err := db.DB.First(&school, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "School not found"})
	}

	if err := db.DB.Model(&school).Update("is_deleted", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "School deleted successfully"})
}
