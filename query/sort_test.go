package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usualmarts/sfds-api/models"
)

func TestApplySortRejectsUnknownKey(t *testing.T) {
	gdb := newDryRunDB(t)

	_, err := ApplySort(gdb.Model(&models.User{}), "password", "asc", UserSortOptions)

	assert.ErrorIs(t, err, ErrInvalidSortKey)
}

func TestApplySortRejectsBadDirection(t *testing.T) {
	gdb := newDryRunDB(t)

	_, err := ApplySort(gdb.Model(&models.User{}), "created_at", "sideways", UserSortOptions)

	assert.ErrorIs(t, err, ErrInvalidSortDirection)
}

func TestApplySortIsCaseInsensitive(t *testing.T) {
	gdb := newDryRunDB(t)

	q, err := ApplySort(gdb.Model(&models.Transaction{}), "AMOUNT", "DESC", TransactionSortOptions)
	require.NoError(t, err)
	tx := q.Find(&[]models.Transaction{})

	assert.Contains(t, tx.Statement.SQL.String(), "transactions.amount desc")
}

func TestApplySortAppendsTieBreak(t *testing.T) {
	gdb := newDryRunDB(t)

	q, err := ApplySort(gdb.Model(&models.StudentAppointment{}), "appointment_date", "asc", AppointmentSortOptions)
	require.NoError(t, err)
	tx := q.Find(&[]models.StudentAppointment{})

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "student_appointment.appointment_date asc")
	assert.Contains(t, sql, "student_appointment.id asc")
}

func TestSortOptionsCoverOnlyExposedKeys(t *testing.T) {
	// The maps are closed: anything outside them must fail, including
	// plausible-looking column names.
	for _, key := range []string{"email", "id", "password", "users.created_at"} {
		gdb := newDryRunDB(t)
		_, err := ApplySort(gdb.Model(&models.User{}), key, "asc", UserSortOptions)
		assert.ErrorIs(t, err, ErrInvalidSortKey, key)
	}
}
