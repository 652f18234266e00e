package controllers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/query"
	"github.com/usualmarts/sfds-api/utils"
)

// GetUsers lists users with the full filter/sort/paginate pipeline. Staff
// browse students and colleagues through this endpoint.
func GetUsers(c *fiber.Ctx) error {
	filter := query.UserFilter{
		FirstName: optionalString(c, "first_name"),
		Email:     optionalString(c, "email"),
		City:      optionalString(c, "city"),
		State:     optionalString(c, "state"),
		School:    optionalString(c, "school"),
	}

	if v := c.Query("zip_code"); v != "" {
		zip, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid zip_code"})
		}
		filter.ZipCode = &zip
	}

	if v := c.Query("role"); v != "" {
		role, ok := models.ParseRoleFilter(v)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid role filter"})
		}
		filter.Role = &role
	}

	filtered := func() *gorm.DB { return filter.Apply(db.DB.Model(&models.User{})) }

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	q, err := query.ApplySort(filtered(), c.Query("sort", "created_at"), c.Query("order", "asc"), query.UserSortOptions)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}

	var users []models.User
	if err := query.Paginate(q, c.QueryInt("offset", query.DefaultOffset), c.QueryInt("limit", query.DefaultLimit)).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"total_count": total,
		"users":       users,
	})
}

// GetUserByID returns one user.
func GetUserByID(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.Preload("Schools").First(&user, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}
	return c.JSON(user)
}

// UpdateUserRole assigns one of the assignable roles. ADMIN and SUPER_ADMIN
// are not settable through this path.
func UpdateUserRole(c *fiber.Ctx) error {
	role := models.Role(strings.ToUpper(c.Query("role", string(models.RoleStudent))))
	if !role.Assignable() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid role"})
	}

	res := db.DB.Model(&models.User{}).Where("id = ?", c.Params("pk")).Update("role", role)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": res.Error.Error()})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}

	return c.JSON(fiber.Map{"message": "Role updated successfully"})
}

type AdminCreateUserInput struct {
	FirstName  string         `json:"first_name" form:"first_name"`
	MiddleName string         `json:"middle_name" form:"middle_name"`
	LastName   string         `json:"last_name" form:"last_name"`
	Email      string         `json:"email" form:"email"`
	Password   string         `json:"password" form:"password"`
	Role       models.Role    `json:"role" form:"role"`
	School     []string       `json:"school" form:"school"`
	CellPhone  *int64         `json:"cell_phone" form:"cell_phone"`
	Address    string         `json:"address" form:"address"`
	Apartment  string         `json:"apartment" form:"apartment"`
	City       string         `json:"city" form:"city"`
	State      string         `json:"state" form:"state"`
	DOB        string         `json:"dob" form:"dob"`
	Gender     *models.Gender `json:"gender" form:"gender"`
}

// CreateUserAdmin lets staff create a user together with their profile.
// Students get a set-password link; everyone else is mailed their initial
// credentials.
func CreateUserAdmin(c *fiber.Ctx) error {
	input := new(AdminCreateUserInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if input.Email == "" || input.Password == "" || input.FirstName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Missing required fields"})
	}
	if input.Role == "" {
		input.Role = models.RoleStudent
	}
	if !input.Role.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid role"})
	}
	if input.Gender != nil && !input.Gender.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid gender"})
	}

	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "User already exists"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	user := models.User{
		FirstName:       input.FirstName,
		MiddleName:      input.MiddleName,
		LastName:        input.LastName,
		Email:           input.Email,
		Password:        string(hashed),
		InitialPassword: string(hashed),
		Role:            input.Role,
	}

	if len(input.School) > 0 {
		var schools []models.School
		db.DB.Where("name IN ?", input.School).Find(&schools)
		if len(schools) != len(input.School) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "One or more schools do not exist"})
		}
		user.Schools = schools
	}

	profile := models.Profile{
		CellPhone: input.CellPhone,
		Address:   input.Address,
		Apartment: input.Apartment,
		City:      input.City,
		State:     input.State,
		Gender:    input.Gender,
	}
	if input.DOB != "" {
		dob, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid dob, expected YYYY-MM-DD"})
		}
		profile.DOB = &dob
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(&profile).Error
	})
	if err != nil {
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if user.Role == models.RoleStudent {
		token, err := utils.CreateVerificationToken(user.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Unable to send email"})
		}
		link := utils.BaseURL() + "/api/user/verify/password?token=" + token
		if err := utils.SendEmail(user.Email, "Verification email", utils.SetPasswordEmailBody(user.FirstName, link)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Unable to send email"})
		}
	} else {
		body := utils.CredentialsEmailBody(user.FirstName, user.Email, input.Password)
		if err := utils.SendEmail(user.Email, "Verification email", body); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Unable to send email"})
		}
	}

	return c.JSON(fiber.Map{"message": "User created successfully"})
}

// ResendVerification re-sends the verification email for the logged-in user.
func ResendVerification(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return fail(c, err)
	}

	if user.IsVerified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "User already verified"})
	}

	if err := sendVerificationEmail(user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Verification email sent successfully"})
}

type VerifyPasswordInput struct {
	NewPassword string `json:"new_password" form:"new_password"`
}

// VerifyAndSetPassword verifies a staff-created student and sets their
// chosen password in one step.
func VerifyAndSetPassword(c *fiber.Ctx) error {
	userID, err := utils.DecodeVerificationToken(c.Query("token"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid token"})
	}

	input := new(VerifyPasswordInput)
	if err := c.BodyParser(input); err != nil || input.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "new_password is required"})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to hash password"})
	}

	err = db.DB.Model(&user).Updates(map[string]interface{}{
		"is_verified": true,
		"password":    string(hashed),
	}).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// DeleteUser removes a user and their profile.
func DeleteUser(c *fiber.Ctx) error {
	var user models.User
	if err := db.DB.First(&user, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found"})
	}

	var profile models.Profile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User profile not found"})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}
		return tx.Delete(&profile).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// optionalString distinguishes an absent query param from an empty one.
func optionalString(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}
