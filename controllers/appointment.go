package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/query"
)

type appointmentView struct {
	models.StudentAppointment
	Status models.AppointmentStatus `json:"status"`
}

// GetAppointments lists appointments with filter, sort and pagination.
// CONFIRMED appointments whose date is still ahead render as UPCOMING.
func GetAppointments(c *fiber.Ctx) error {
	filter := query.AppointmentFilter{
		StudentID:    optionalUint(c, "student_id"),
		InstructorID: optionalUint(c, "instructor_id"),
	}

	if v := c.Query("appointment_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid appointment_date, expected YYYY-MM-DD"})
		}
		filter.AppointmentDate = &d
	}

	if v := c.Query("status"); v != "" {
		status := models.AppointmentStatus(strings.ToUpper(v))
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid status"})
		}
		filter.Status = &status
	}

	filtered := func() *gorm.DB { return filter.Apply(db.DB.Model(&models.StudentAppointment{})) }

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	q, err := query.ApplySort(filtered(), c.Query("sort", "appointment_date"), c.Query("order", "asc"), query.AppointmentSortOptions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	var appointments []models.StudentAppointment
	if err := query.Paginate(q, c.QueryInt("offset", query.DefaultOffset), c.QueryInt("limit", query.DefaultLimit)).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	now := time.Now()
	views := make([]appointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, appointmentView{StudentAppointment: a, Status: a.DisplayStatus(now)})
	}

	return c.JSON(fiber.Map{
		"total_count":  total,
		"appointments": views,
	})
}

type AppointmentRequestInput struct {
	AppointmentDate string `json:"appointment_date" form:"appointment_date"`
	StartTime       string `json:"start_time" form:"start_time"`
	EndTime         string `json:"end_time" form:"end_time"`
}

// RequestAppointment creates a PENDING appointment for the logged-in
// student. A student with any appointment on record cannot request another.
func RequestAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(AppointmentRequestInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	appointment := models.StudentAppointment{
		StudentID: user.ID,
		Status:    models.StatusPending,
	}
	if input.StartTime != "" {
		st, err := normalizeClock(input.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid start_time, expected HH:MM"})
		}
		appointment.StartTime = st
	}
	if input.EndTime != "" {
		et, err := normalizeClock(input.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid end_time, expected HH:MM"})
		}
		appointment.EndTime = et
	}
	if input.AppointmentDate != "" {
		d, err := time.Parse("2006-01-02", input.AppointmentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid appointment_date, expected YYYY-MM-DD"})
		}
		appointment.AppointmentDate = &d
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.StudentAppointment{}).Where("student_id = ?", user.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusNotAcceptable, "you have a pending request")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Appointment request sent successfully"})
}

type AppointmentUpdateInput struct {
	AppointmentDate *string `json:"appointment_date" form:"appointment_date"`
	StartTime       *string `json:"start_time" form:"start_time"`
	EndTime         *string `json:"end_time" form:"end_time"`
}

// UpdateAppointment replaces only the supplied fields on the caller's own
// appointment.
func UpdateAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(AppointmentUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	var appointment models.StudentAppointment
	if err := db.DB.Where("student_id = ?", user.ID).First(&appointment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "You do not have any appointment"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.AppointmentDate != nil {
		d, err := time.Parse("2006-01-02", *input.AppointmentDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid appointment_date, expected YYYY-MM-DD"})
		}
		updates["appointment_date"] = d
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
		if err := db.DB.Model(&appointment).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Appointment updated successfully"})
}

// DeleteAppointment hard-deletes an appointment. Students may only delete
// their own; staff may delete any.
func DeleteAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	var appointment models.StudentAppointment
	if err := db.DB.First(&appointment, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Appointment not found"})
	}

	if user.Role == models.RoleStudent && appointment.StudentID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You are not authorized to delete this appointment"})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(appointment)
}

// ApproveAppointment confirms a pending request and assigns the instructor.
// Approving an already-confirmed appointment is a no-op success. Students
// cannot approve anything.
func ApproveAppointment(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	pk := c.QueryInt("pk")
	instructorID := c.QueryInt("instructor_id")
	if pk <= 0 || instructorID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "pk and instructor_id are required"})
	}

	var appointment models.StudentAppointment
	if err := db.DB.First(&appointment, pk).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Appointment not found"})
	}

	if appointment.Status == models.StatusConfirmed {
		return c.JSON(fiber.Map{"message": "Appointment already approved"})
	}

	if user.Role == models.RoleStudent {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "You are not authorized to approve this appointment"})
	}

	var instructor models.User
	if db.DB.Where("id = ? AND role = ?", instructorID, models.RoleInstructor).First(&instructor).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Instructor not found"})
	}

	if err := appointment.CanTransition(models.StatusConfirmed); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	err = db.DB.Model(&appointment).Updates(map[string]interface{}{
		"status":        models.StatusConfirmed,
		"instructor_id": instructor.ID,
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Appointment approved successfully"})
}

// optionalUint distinguishes an absent numeric query param from zero.
func optionalUint(c *fiber.Ctx, key string) *uint {
	if v := c.QueryInt(key, -1); v >= 0 {
		u := uint(v)
		return &u
	}
	return nil
}
