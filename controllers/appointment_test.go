package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows(id uint, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "role"}).
		AddRow(id, "someone@example.com", role)
}

func appointmentRows(id, studentID uint, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "status"}).
		AddRow(id, studentID, status)
}

func TestApproveAlreadyConfirmedIsNoOpForAnyRole(t *testing.T) {
	mock := setupMockDB(t)
	// the already-approved check runs before the role gate, so even a
	// student caller gets the no-op success
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "student_appointment"`).WillReturnRows(appointmentRows(5, 4, "CONFIRMED"))

	app := appWithUser(4, fiber.MethodPut, "/appointment/approve", ApproveAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/appointment/approve?pk=5&instructor_id=9", ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Appointment already approved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRejectsStudentForPending(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "student_appointment"`).WillReturnRows(appointmentRows(5, 4, "PENDING"))

	app := appWithUser(4, fiber.MethodPut, "/appointment/approve", ApproveAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/appointment/approve?pk=5&instructor_id=9", ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveConfirmsPendingAndAssignsInstructor(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(2, "ADMIN"))
	mock.ExpectQuery(`SELECT \* FROM "student_appointment"`).WillReturnRows(appointmentRows(5, 4, "PENDING"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(9, "INSTRUCTOR"))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "student_appointment" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := appWithUser(2, fiber.MethodPut, "/appointment/approve", ApproveAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/appointment/approve?pk=5&instructor_id=9", ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Appointment approved successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApproveRejectsNonInstructorAssignee(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(2, "ADMIN"))
	mock.ExpectQuery(`SELECT \* FROM "student_appointment"`).WillReturnRows(appointmentRows(5, 4, "PENDING"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))

	app := appWithUser(2, fiber.MethodPut, "/appointment/approve", ApproveAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/appointment/approve?pk=5&instructor_id=9", ""))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Instructor not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestAppointmentRejectsDuplicate(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "student_appointment"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	app := appWithUser(4, fiber.MethodPost, "/appointment/post", RequestAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/appointment/post", `{"start_time":"10:00","end_time":"11:00"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotAcceptable, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "you have a pending request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestAppointmentRejectsBadStartTime(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(4, "STUDENT"))

	app := appWithUser(4, fiber.MethodPost, "/appointment/post", RequestAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPost, "/appointment/post", `{"start_time":"noon"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Invalid start_time")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointmentLookupErrorIsNot404(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "student_appointment"`).WillReturnError(errors.New("connection reset"))

	app := appWithUser(4, fiber.MethodPut, "/appointment/update", UpdateAppointment)
	resp, err := app.Test(jsonRequest(http.MethodPut, "/appointment/update", `{"start_time":"10:00"}`))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
