package query

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/models"
)

// newDryRunDB opens GORM over sqlmock in dry-run mode so tests can inspect
// the SQL a filter builds without a database.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb
}

func strptr(s string) *string { return &s }

func uintp(u uint) *uint { return &u }

func boolptr(b bool) *bool { return &b }

func roleptr(r models.RoleFilter) *models.RoleFilter { return &r }

func TestUserFilterEmptyAddsNoPredicates(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := UserFilter{}.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})

	assert.NotContains(t, tx.Statement.SQL.String(), "WHERE")
}

func TestUserFilterCombinesPredicates(t *testing.T) {
	gdb := newDryRunDB(t)

	filter := UserFilter{
		FirstName: strptr("ali"),
		City:      strptr("austin"),
	}
	tx := filter.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "users.first_name ILIKE")
	assert.Contains(t, sql, "JOIN user_profiles ON user_profiles.user_id = users.id")
	assert.Contains(t, sql, "user_profiles.city ILIKE")
	assert.Contains(t, tx.Statement.Vars, "%ali%")
	assert.Contains(t, tx.Statement.Vars, "%austin%")
}

func TestUserFilterRoleModes(t *testing.T) {
	t.Run("ALL matches everyone", func(t *testing.T) {
		gdb := newDryRunDB(t)
		tx := UserFilter{Role: roleptr(models.RoleFilterAll)}.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})
		assert.NotContains(t, tx.Statement.SQL.String(), "role")
	})

	t.Run("NOT_STUDENT excludes students", func(t *testing.T) {
		gdb := newDryRunDB(t)
		tx := UserFilter{Role: roleptr(models.RoleFilterNotStudent)}.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})
		assert.Contains(t, tx.Statement.SQL.String(), "users.role <> ")
	})

	t.Run("concrete role is equality", func(t *testing.T) {
		gdb := newDryRunDB(t)
		tx := UserFilter{Role: roleptr(models.RoleFilter(models.RoleInstructor))}.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})
		assert.Contains(t, tx.Statement.SQL.String(), "users.role = ")
		assert.Contains(t, tx.Statement.Vars, "INSTRUCTOR")
	})
}

func TestUserFilterSchoolUsesExistsSubquery(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := UserFilter{School: strptr("Downtown")}.Apply(gdb.Model(&models.User{})).Find(&[]models.User{})

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM user_schools")
	assert.Contains(t, tx.Statement.Vars, "Downtown")
}

func TestAppointmentFilterDateWindow(t *testing.T) {
	gdb := newDryRunDB(t)

	d := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	tx := AppointmentFilter{AppointmentDate: &d}.Apply(gdb.Model(&models.StudentAppointment{})).Find(&[]models.StudentAppointment{})

	assert.Contains(t, tx.Statement.SQL.String(), "student_appointment.appointment_date BETWEEN")
	assert.Contains(t, tx.Statement.Vars, d.AddDate(0, 0, -2))
	assert.Contains(t, tx.Statement.Vars, d.AddDate(0, 0, 2))
}

func TestAvailabilityFilterTimeWindow(t *testing.T) {
	gdb := newDryRunDB(t)

	q, err := AvailabilityFilter{StartTime: strptr("10:00")}.Apply(gdb.Model(&models.InstructorAvailability{}))
	require.NoError(t, err)
	tx := q.Find(&[]models.InstructorAvailability{})

	assert.Contains(t, tx.Statement.SQL.String(), "instructor_availability.start_time BETWEEN")
	assert.Contains(t, tx.Statement.Vars, "09:30")
	assert.Contains(t, tx.Statement.Vars, "10:30")
}

func TestAvailabilityFilterRejectsBadTime(t *testing.T) {
	gdb := newDryRunDB(t)

	_, err := AvailabilityFilter{EndTime: strptr("late")}.Apply(gdb.Model(&models.InstructorAvailability{}))

	assert.Error(t, err)
}

func TestTransactionFilterIsDeletedFalseStillFilters(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := TransactionFilter{IsDeleted: boolptr(false)}.Apply(gdb.Model(&models.Transaction{})).Find(&[]models.Transaction{})

	assert.Contains(t, tx.Statement.SQL.String(), "transactions.is_deleted = ")
	assert.Contains(t, tx.Statement.Vars, false)
}

func TestTransactionFilterNilIsDeletedIsAbsent(t *testing.T) {
	gdb := newDryRunDB(t)

	tx := TransactionFilter{UserID: uintp(7)}.Apply(gdb.Model(&models.Transaction{})).Find(&[]models.Transaction{})

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, "transactions.user_id = ")
	assert.NotContains(t, sql, "is_deleted")
}

func TestTransactionFilterChargeDateWindow(t *testing.T) {
	gdb := newDryRunDB(t)

	d := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tx := TransactionFilter{DateCharged: &d}.Apply(gdb.Model(&models.Transaction{})).Find(&[]models.Transaction{})

	assert.Contains(t, tx.Statement.SQL.String(), "transactions.date_charged BETWEEN")
	assert.Contains(t, tx.Statement.Vars, d.AddDate(0, 0, -1))
	assert.Contains(t, tx.Statement.Vars, d.AddDate(0, 0, 1))
}
