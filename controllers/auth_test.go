package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usualmarts/sfds-api/utils"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// stubEmail replaces SMTP delivery with a capture for the duration of a test.
func stubEmail(t *testing.T) *[]sentMail {
	t.Helper()
	var sent []sentMail
	prev := utils.SendEmail
	utils.SendEmail = func(to, subject, body string) error {
		sent = append(sent, sentMail{to: to, subject: subject, body: body})
		return nil
	}
	t.Cleanup(func() { utils.SendEmail = prev })
	return &sent
}

func forgetApp() *fiber.App {
	app := fiber.New()
	app.Get("/auth/password/forget", ForgetPassword)
	return app
}

func TestForgetPasswordReplacesExistingCode(t *testing.T) {
	mock := setupMockDB(t)
	sent := stubEmail(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "otp_storages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "otp", "expiration_time"}).
			AddRow(3, "someone@example.com", "111111", 100))
	// the existing row is updated in place, never a second one inserted
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "otp_storages" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/auth/password/forget?email=someone@example.com", nil)
	resp, err := forgetApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Successfully send password reset link")
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, *sent, 1)
	assert.Equal(t, "someone@example.com", (*sent)[0].to)
}

func TestForgetPasswordCreatesFirstCode(t *testing.T) {
	mock := setupMockDB(t)
	sent := stubEmail(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "otp_storages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "otp", "expiration_time"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "otp_storages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req := httptest.NewRequest(http.MethodGet, "/auth/password/forget?email=someone@example.com", nil)
	resp, err := forgetApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, *sent, 1)
}

func TestForgetPasswordUnknownEmailIs404(t *testing.T) {
	mock := setupMockDB(t)
	sent := stubEmail(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}))

	req := httptest.NewRequest(http.MethodGet, "/auth/password/forget?email=nobody@example.com", nil)
	resp, err := forgetApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Email not found")
	assert.Empty(t, *sent)
}

func TestForgetPasswordLookupErrorIs500(t *testing.T) {
	mock := setupMockDB(t)
	sent := stubEmail(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(userRows(4, "STUDENT"))
	mock.ExpectQuery(`SELECT \* FROM "otp_storages"`).
		WillReturnError(errors.New("connection reset"))

	req := httptest.NewRequest(http.MethodGet, "/auth/password/forget?email=someone@example.com", nil)
	resp, err := forgetApp().Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, *sent)
}
