package query

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrInvalidSortKey is returned when the sort key is outside the
	// entity's closed mapping. Unknown keys fail fast instead of silently
	// ordering by nothing.
	ErrInvalidSortKey = errors.New("invalid sort parameter")

	// ErrInvalidSortDirection is returned when order is neither asc nor desc.
	ErrInvalidSortDirection = errors.New("invalid order parameter, use 'asc' or 'desc'")
)

// SortOptions maps logical sort keys to the orderable column they resolve to.
type SortOptions struct {
	Keys map[string]string
	// TieBreak keeps equal keys in a deterministic order so sorting is
	// stable and idempotent across requests.
	TieBreak string
}

var UserSortOptions = SortOptions{
	Keys: map[string]string{
		"created_at": "users.created_at",
		"updated_at": "users.updated_at",
		"first_name": "users.first_name",
	},
	TieBreak: "users.id",
}

var AppointmentSortOptions = SortOptions{
	Keys: map[string]string{
		"appointment_date": "student_appointment.appointment_date",
		"start_time":       "student_appointment.start_time",
		"end_time":         "student_appointment.end_time",
	},
	TieBreak: "student_appointment.id",
}

var AvailabilitySortOptions = SortOptions{
	Keys: map[string]string{
		"availability_date": "instructor_availability.availability_date",
		"start_time":        "instructor_availability.start_time",
		"end_time":          "instructor_availability.end_time",
		"created_at":        "instructor_availability.created_at",
		"updated_at":        "instructor_availability.updated_at",
		"instructor_id":     "instructor_availability.instructor_id",
	},
	TieBreak: "instructor_availability.id",
}

var TransactionSortOptions = SortOptions{
	Keys: map[string]string{
		"date_charged":   "transactions.date_charged",
		"amount":         "transactions.amount",
		"discount":       "transactions.discount",
		"method":         "transactions.method",
		"location":       "transactions.location",
		"refund":         "transactions.refund",
		"created_at":     "transactions.created_at",
		"updated_at":     "transactions.updated_at",
		"transaction_id": "transactions.id",
	},
	TieBreak: "transactions.id",
}

// ApplySort orders q by the given logical key and direction. It must run
// after filtering and before pagination.
func ApplySort(q *gorm.DB, sort, order string, opts SortOptions) (*gorm.DB, error) {
	column, ok := opts.Keys[strings.ToLower(sort)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sort)
	}

	direction := strings.ToLower(order)
	if direction != "asc" && direction != "desc" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortDirection, order)
	}

	return q.Order(column + " " + direction).Order(opts.TieBreak + " asc"), nil
}
