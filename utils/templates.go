package utils

import (
	"fmt"
	"os"
)

// BaseURL is where verification links point. Defaults to the local server.
func BaseURL() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8000"
}

// VerificationEmailBody builds the account-verification email.
func VerificationEmailBody(username, verificationLink string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to the driving school. Please verify your email address to activate your account.</p>
		<p><a href="%s">Verify my account</a></p>
		<p>If you did not sign up, you can ignore this email.</p>
	`, username, verificationLink)
}

// OTPEmailBody builds the password-reset email carrying the one-time code.
func OTPEmailBody(otp string) string {
	return fmt.Sprintf(`
		<p>Your password reset code is:</p>
		<p><strong>%s</strong></p>
		<p>The code is valid for 10 minutes. If you did not request a reset, ignore this email.</p>
	`, otp)
}

// SetPasswordEmailBody builds the email sent to staff-created students, who
// verify and choose a password in one step.
func SetPasswordEmailBody(username, redirectLink string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An account has been created for you. Follow the link below to verify your email and set your password.</p>
		<p><a href="%s">Set my password</a></p>
	`, username, redirectLink)
}

// CredentialsEmailBody builds the email sent to staff-created non-student
// accounts, which receive their initial credentials directly.
func CredentialsEmailBody(username, email, password string) string {
	return fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An account has been created for you.</p>
		<ul>
			<li><strong>Email:</strong> %s</li>
			<li><strong>Password:</strong> %s</li>
		</ul>
		<p>Please log in and change your password.</p>
	`, username, email, password)
}
