package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StudentAppointment is a student's lesson request. Times are stored as
// zero-padded "HH:MM" strings so window comparisons stay lexicographic.
type StudentAppointment struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	StudentID       uint              `json:"student_id"`
	InstructorID    *uint             `json:"instructor_id,omitempty"`
	AppointmentDate *time.Time        `json:"appointment_date,omitempty" gorm:"type:date"`
	StartTime       string            `json:"start_time,omitempty" gorm:"size:5"`
	EndTime         string            `json:"end_time,omitempty" gorm:"size:5"`
	Status          AppointmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (StudentAppointment) TableName() string { return "student_appointment" }

func (a *StudentAppointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving from the current stored status to
// newStatus is allowed. UPCOMING is derived, never stored, so it is not a
// legal target here.
func (a *StudentAppointment) CanTransition(newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusOnGoing && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
		}
	case StatusOnGoing:
		if newStatus != StatusCompleted {
			return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	default:
		return fmt.Errorf("unknown status %s", a.Status)
	}
	return nil
}

// DisplayStatus maps CONFIRMED appointments whose date is still ahead to
// UPCOMING for API responses.
func (a *StudentAppointment) DisplayStatus(now time.Time) AppointmentStatus {
	if a.Status == StatusConfirmed && a.AppointmentDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if a.AppointmentDate.After(today) {
			return StatusUpcoming
		}
	}
	return a.Status
}

// InstructorAvailability is one instructor's open window on a given date.
type InstructorAvailability struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	InstructorID     uint       `json:"instructor_id"`
	AvailabilityDate *time.Time `json:"availability_date,omitempty" gorm:"type:date"`
	StartTime        string     `json:"start_time,omitempty" gorm:"size:5"`
	EndTime          string     `json:"end_time,omitempty" gorm:"size:5"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (InstructorAvailability) TableName() string { return "instructor_availability" }
