package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/redis"
	"github.com/usualmarts/sfds-api/utils"
)

type RegisterInput struct {
	FirstName  string   `json:"first_name" form:"first_name"`
	MiddleName string   `json:"middle_name" form:"middle_name"`
	LastName   string   `json:"last_name" form:"last_name"`
	Email      string   `json:"email" form:"email"`
	Password   string   `json:"password" form:"password"`
	School     []string `json:"school" form:"school"`
}

// Register creates a student account with an empty profile and sends the
// verification email.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Missing required fields"})
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "E-mail already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	user := models.User{
		FirstName:  input.FirstName,
		MiddleName: input.MiddleName,
		LastName:   input.LastName,
		Email:      input.Email,
		Password:   string(hashed),
		Role:       models.RoleStudent,
	}

	if len(input.School) > 0 {
		var schools []models.School
		db.DB.Where("name IN ?", input.School).Find(&schools)
		if len(schools) != len(input.School) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "One or more schools do not exist"})
		}
		user.Schools = schools
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID}).Error
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if err := sendVerificationEmail(&user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "User created successfully, please check your email to verify your account",
	})
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Login authenticates a verified user and issues access and refresh tokens.
// Unverified users get a fresh verification email instead.
func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid credentials"})
	}

	if !user.IsVerified {
		if err := sendVerificationEmail(&user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Please verify your email to login"})
	}

	accessToken, err := utils.CreateAccessToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to generate token"})
	}
	refreshToken, err := utils.CreateRefreshToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to generate refresh token"})
	}

	return c.JSON(fiber.Map{
		"id":            user.ID,
		"email":         user.Email,
		"role":          user.Role,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
	})
}

// Verify flips is_verified for the user named in the emailed token.
func Verify(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid token"})
	}

	userID, err := utils.DecodeVerificationToken(token)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid token"})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}

	if err := db.DB.Model(&user).Update("is_verified", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User verified successfully"})
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// RefreshToken exchanges a live refresh token for a new access token.
// Denylisted tokens are rejected.
func RefreshToken(c *fiber.Ctx) error {
	input := new(RefreshInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	claims, err := utils.ParseToken(input.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid refresh token"})
	}

	if jti, _ := claims["jti"].(string); redis.IsTokenDenied(jti) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid refresh token"})
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid refresh token"})
	}

	var user models.User
	if err := db.DB.First(&user, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "Invalid refresh token"})
	}

	accessToken, err := utils.CreateAccessToken(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

// Logout denylists the presented refresh token until its natural expiry.
func Logout(c *fiber.Ctx) error {
	input := new(RefreshInput)
	if err := c.BodyParser(input); err == nil && input.RefreshToken != "" {
		if claims, err := utils.ParseToken(input.RefreshToken); err == nil {
			jti, _ := claims["jti"].(string)
			ttl := utils.RefreshTokenTTL
			if exp, ok := claims["exp"].(float64); ok {
				if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
					ttl = until
				}
			}
			if err := redis.DenylistToken(jti, ttl); err != nil {
				log.Printf("Failed to denylist token: %v", err)
			}
		}
	}
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// ForgetPassword issues a one-time reset code, replacing any earlier live
// code for the same email, and mails it out.
func ForgetPassword(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "email is required"})
	}

	var user models.User
	if db.DB.Where("email = ?", email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Email not found"})
	}

	otp, err := utils.GenerateNumericOTP(utils.OTPLength())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to generate OTP"})
	}
	expiration := time.Now().Unix() + utils.OTPTTLSeconds

	var record models.OTPStorage
	switch err := db.DB.Where("email = ?", email).First(&record).Error; {
	case err == nil:
		record.OTP = otp
		record.ExpirationTime = expiration
		if err := db.DB.Save(&record).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.OTPStorage{Email: email, OTP: otp, ExpirationTime: expiration}
		if err := db.DB.Create(&record).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if err := utils.SendEmail(email, "OTP for password reset", utils.OTPEmailBody(otp)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Successfully send password reset link in your mail."})
}

type VerifyOTPInput struct {
	OTP string `json:"otp" form:"otp"`
}

// VerifyOTP checks a reset code without consuming it.
func VerifyOTP(c *fiber.Ctx) error {
	input := new(VerifyOTPInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	record, err := lookupLiveOTP(input.OTP)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "OTP doesn't match or expired. Please try again."})
	}

	return c.JSON(fiber.Map{"message": "OTP verified successfully"})
}

type ResetPasswordInput struct {
	OTP             string `json:"otp" form:"otp"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// ResetPassword re-verifies the code, stores the new credential and spends
// the code, all in one transaction.
func ResetPassword(c *fiber.Ctx) error {
	input := new(ResetPasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	record, err := lookupLiveOTP(input.OTP)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "OTP doesn't match or expired. Please try again."})
	}

	if input.NewPassword != input.ConfirmPassword {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Password doesn't match"})
	}

	var user models.User
	if err := db.DB.Where("email = ?", record.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Where("otp = ?", input.OTP).Delete(&models.OTPStorage{}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

// ChangePassword replaces the credential of the logged-in user.
func ChangePassword(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(ChangePasswordInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.OldPassword)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Incorrect Old Password"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	if err := db.DB.Model(user).Update("password", string(hashed)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// lookupLiveOTP finds an unexpired record by code value. Lookup is global,
// not scoped by email; verification does not consume the code. A nil record
// with a nil error means no live code matched.
func lookupLiveOTP(otp string) (*models.OTPStorage, error) {
	if otp == "" {
		return nil, nil
	}
	var record models.OTPStorage
	if err := db.DB.Where("otp = ?", otp).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if record.Expired(time.Now()) {
		return nil, nil
	}
	return &record, nil
}

func sendVerificationEmail(user *models.User) error {
	token, err := utils.CreateVerificationToken(user.ID)
	if err != nil {
		return err
	}
	link := utils.BaseURL() + "/api/auth/verify?token=" + token
	return utils.SendEmail(user.Email, "Verification email", utils.VerificationEmailBody(user.FirstName, link))
}
