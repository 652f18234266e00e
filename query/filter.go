package query

import (
	"time"

	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/models"
)

// Filters use pointer fields: nil means "not supplied" and the predicate is
// skipped, while a pointer to a zero value (false, 0, "") is a real filter.
// All present predicates are ANDed together.

const (
	appointmentDateWindowDays  = 2
	availabilityDateWindowDays = 2
	availabilityTimeWindow     = 30 * time.Minute
	chargeDateWindowDays       = 1
)

type UserFilter struct {
	FirstName *string
	Email     *string
	City      *string
	State     *string
	ZipCode   *int
	Role      *models.RoleFilter
	School    *string
}

func (f UserFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.FirstName != nil {
		q = q.Where("users.first_name ILIKE ?", "%"+*f.FirstName+"%")
	}
	if f.Email != nil {
		q = q.Where("users.email = ?", *f.Email)
	}

	if f.City != nil || f.State != nil || f.ZipCode != nil {
		q = q.Joins("JOIN user_profiles ON user_profiles.user_id = users.id")
		if f.City != nil {
			q = q.Where("user_profiles.city ILIKE ?", "%"+*f.City+"%")
		}
		if f.State != nil {
			q = q.Where("user_profiles.state ILIKE ?", "%"+*f.State+"%")
		}
		if f.ZipCode != nil {
			q = q.Where("user_profiles.zip_code = ?", *f.ZipCode)
		}
	}

	if f.Role != nil {
		switch *f.Role {
		case models.RoleFilterAll:
			// sentinel: no narrowing
		case models.RoleFilterNotStudent:
			q = q.Where("users.role <> ?", models.RoleStudent)
		default:
			q = q.Where("users.role = ?", string(*f.Role))
		}
	}

	if f.School != nil {
		q = q.Where(
			"EXISTS (SELECT 1 FROM user_schools JOIN schools ON schools.id = user_schools.school_id WHERE user_schools.user_id = users.id AND schools.name = ?)",
			*f.School,
		)
	}

	return q
}

type AppointmentFilter struct {
	StudentID       *uint
	InstructorID    *uint
	AppointmentDate *time.Time
	Status          *models.AppointmentStatus
}

func (f AppointmentFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.StudentID != nil {
		q = q.Where("student_appointment.student_id = ?", *f.StudentID)
	}
	if f.InstructorID != nil {
		q = q.Where("student_appointment.instructor_id = ?", *f.InstructorID)
	}
	if f.AppointmentDate != nil {
		min, max := DateWindow(*f.AppointmentDate, appointmentDateWindowDays)
		q = q.Where("student_appointment.appointment_date BETWEEN ? AND ?", min, max)
	}
	if f.Status != nil {
		q = q.Where("student_appointment.status = ?", *f.Status)
	}
	return q
}

type AvailabilityFilter struct {
	InstructorID     *uint
	AvailabilityDate *time.Time
	StartTime        *string
	EndTime          *string
}

func (f AvailabilityFilter) Apply(q *gorm.DB) (*gorm.DB, error) {
	if f.AvailabilityDate != nil {
		min, max := DateWindow(*f.AvailabilityDate, availabilityDateWindowDays)
		q = q.Where("instructor_availability.availability_date BETWEEN ? AND ?", min, max)
	}
	if f.StartTime != nil {
		lo, hi, err := ClockWindow(*f.StartTime, availabilityTimeWindow)
		if err != nil {
			return nil, err
		}
		q = q.Where("instructor_availability.start_time BETWEEN ? AND ?", lo, hi)
	}
	if f.EndTime != nil {
		lo, hi, err := ClockWindow(*f.EndTime, availabilityTimeWindow)
		if err != nil {
			return nil, err
		}
		q = q.Where("instructor_availability.end_time BETWEEN ? AND ?", lo, hi)
	}
	if f.InstructorID != nil {
		q = q.Where("instructor_availability.instructor_id = ?", *f.InstructorID)
	}
	return q, nil
}

type TransactionFilter struct {
	TransactionID *uint
	UserID        *uint
	Amount        *float64
	Discount      *float64
	Method        *models.TransactionMethod
	Location      *string
	IsDeleted     *bool
	DateCharged   *time.Time
}

func (f TransactionFilter) Apply(q *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		q = q.Where("transactions.user_id = ?", *f.UserID)
	}
	if f.TransactionID != nil {
		q = q.Where("transactions.id = ?", *f.TransactionID)
	}
	if f.Amount != nil {
		q = q.Where("transactions.amount = ?", *f.Amount)
	}
	if f.Discount != nil {
		q = q.Where("transactions.discount = ?", *f.Discount)
	}
	if f.Method != nil {
		q = q.Where("transactions.method = ?", *f.Method)
	}
	if f.Location != nil {
		q = q.Where("transactions.location = ?", *f.Location)
	}
	if f.IsDeleted != nil {
		// false narrows to live rows, so presence, not truthiness, decides.
		q = q.Where("transactions.is_deleted = ?", *f.IsDeleted)
	}
	if f.DateCharged != nil {
		min, max := DateWindow(*f.DateCharged, chargeDateWindowDays)
		q = q.Where("transactions.date_charged BETWEEN ? AND ?", min, max)
	}
	return q
}
