package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/usualmarts/sfds-api/db"
	"github.com/usualmarts/sfds-api/models"
	"github.com/usualmarts/sfds-api/utils"
)

// GetProfile returns the logged-in user together with their profile.
func GetProfile(c *fiber.Ctx) error {
	user, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

type ProfileUpdateInput struct {
	FirstName  *string        `json:"first_name" form:"first_name"`
	MiddleName *string        `json:"middle_name" form:"middle_name"`
	LastName   *string        `json:"last_name" form:"last_name"`
	CellPhone  *int64         `json:"cell_phone" form:"cell_phone"`
	Gender     *models.Gender `json:"gender" form:"gender"`
	DOB        *string        `json:"dob" form:"dob"`
	Address    *string        `json:"address" form:"address"`
	Apartment  *string        `json:"apartment" form:"apartment"`
	City       *string        `json:"city" form:"city"`
	State      *string        `json:"state" form:"state"`
	ZipCode    *int           `json:"zip_code" form:"zip_code"`
	OfficeNote *string        `json:"office_note" form:"office_note"`
}

// UpdateProfile replaces only the supplied name and profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	user, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(ProfileUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	userUpdates := map[string]interface{}{}
	if input.FirstName != nil {
		userUpdates["first_name"] = *input.FirstName
	}
	if input.MiddleName != nil {
		userUpdates["middle_name"] = *input.MiddleName
	}
	if input.LastName != nil {
		userUpdates["last_name"] = *input.LastName
	}

	profileUpdates := map[string]interface{}{}
	if input.CellPhone != nil {
		profileUpdates["cell_phone"] = *input.CellPhone
	}
	if input.Gender != nil {
		if !input.Gender.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid gender"})
		}
		profileUpdates["gender"] = *input.Gender
	}
	if input.DOB != nil {
		dob, err := time.Parse("2006-01-02", *input.DOB)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Invalid dob, expected YYYY-MM-DD"})
		}
		profileUpdates["dob"] = dob
	}
	if input.Address != nil {
		profileUpdates["address"] = *input.Address
	}
	if input.Apartment != nil {
		profileUpdates["apartment"] = *input.Apartment
	}
	if input.City != nil {
		profileUpdates["city"] = *input.City
	}
	if input.State != nil {
		profileUpdates["state"] = *input.State
	}
	if input.ZipCode != nil {
		profileUpdates["zip_code"] = *input.ZipCode
	}
	if input.OfficeNote != nil {
		profileUpdates["office_note"] = *input.OfficeNote
	}

	if len(userUpdates) > 0 {
		if err := db.DB.Model(user).Updates(userUpdates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
	}
	if len(profileUpdates) > 0 {
		if err := db.DB.Model(profile).Updates(profileUpdates).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// UpdateProfilePicture uploads a new picture to Cloudinary and stores its
// URL on the profile.
func UpdateProfilePicture(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "picture file is required"})
	}

	url, err := utils.UploadProfilePicture(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if err := db.DB.Model(profile).Update("profile_picture", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{"profile_picture": url})
}

type PickupLocationInput struct {
	Name      string `json:"name" form:"name"`
	Address   string `json:"address" form:"address"`
	Apartment string `json:"apartment" form:"apartment"`
	City      string `json:"city" form:"city"`
}

// CreatePickupLocation adds a pickup location to the caller's profile.
func CreatePickupLocation(c *fiber.Ctx) error {
	user, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(PickupLocationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	location := models.PickupLocation{
		ProfileID:   profile.ID,
		Name:        input.Name,
		Address:     input.Address,
		Apartment:   input.Apartment,
		City:        input.City,
		CreatedByID: &user.ID,
	}

	if err := db.DB.Create(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(location)
}

// GetPickupLocations lists the caller's pickup locations.
func GetPickupLocations(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	var locations []models.PickupLocation
	if err := db.DB.Where("profile_id = ?", profile.ID).Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if len(locations) == 0 {
		return c.JSON(fiber.Map{"message": "No pickup location found"})
	}

	return c.JSON(fiber.Map{
		"total":           len(locations),
		"pickup_location": locations,
	})
}

type PickupLocationUpdateInput struct {
	ID        uint    `json:"id" form:"id"`
	Name      *string `json:"name" form:"name"`
	Address   *string `json:"address" form:"address"`
	Apartment *string `json:"apartment" form:"apartment"`
	City      *string `json:"city" form:"city"`
}

// UpdatePickupLocation replaces only the supplied fields on a pickup
// location owned by the caller's profile.
func UpdatePickupLocation(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(PickupLocationUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	var location models.PickupLocation
	if db.DB.Where("id = ?", input.ID).First(&location).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Pickup location not found"})
	}

	if location.ProfileID != profile.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "You are not authorized to update this pickup location"})
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Apartment != nil {
		updates["apartment"] = *input.Apartment
	}
	if input.City != nil {
		updates["city"] = *input.City
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&location).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Pickup location updated successfully"})
}

// DeletePickupLocation removes a pickup location owned by the caller's
// profile.
func DeletePickupLocation(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	var location models.PickupLocation
	if err := db.DB.First(&location, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Pickup location not found"})
	}

	if location.ProfileID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You are not authorized to delete this pickup location"})
	}

	if err := db.DB.Delete(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Pickup location deleted successfully",
		"data":    location,
	})
}

type ContactInput struct {
	ContactName         string `json:"contact_name" form:"contact_name"`
	ContactRelationship string `json:"contact_relationship" form:"contact_relationship"`
	ContactPhone        *int64 `json:"contact_phone" form:"contact_phone"`
	ContactEmail        string `json:"contact_email" form:"contact_email"`
	ContactType         string `json:"contact_type" form:"contact_type"`
}

// CreateContact adds an additional contact to the caller's profile. Email
// and phone must be globally unique among contacts.
func CreateContact(c *fiber.Ctx) error {
	user, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(ContactInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	if input.ContactEmail != "" {
		var existing models.ContactInformation
		if db.DB.Where("contact_email ILIKE ?", input.ContactEmail).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Contact email already exists"})
		}
	}
	if input.ContactPhone != nil {
		var existing models.ContactInformation
		if db.DB.Where("contact_phone = ?", *input.ContactPhone).First(&existing).RowsAffected > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Contact phone already exists"})
		}
	}

	contact := models.ContactInformation{
		ProfileID:           profile.ID,
		ContactName:         input.ContactName,
		ContactRelationship: input.ContactRelationship,
		ContactPhone:        input.ContactPhone,
		ContactEmail:        input.ContactEmail,
		ContactType:         input.ContactType,
		CreatedByID:         &user.ID,
	}

	if err := db.DB.Create(&contact).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(contact)
}

// GetContacts lists the caller's additional contacts.
func GetContacts(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	var contacts []models.ContactInformation
	if err := db.DB.Where("profile_id = ?", profile.ID).Find(&contacts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	if len(contacts) == 0 {
		return c.JSON(fiber.Map{"message": "No contact information found"})
	}

	return c.JSON(fiber.Map{
		"total":               len(contacts),
		"contact_information": contacts,
	})
}

type ContactUpdateInput struct {
	ID                  uint    `json:"id" form:"id"`
	ContactName         *string `json:"contact_name" form:"contact_name"`
	ContactRelationship *string `json:"contact_relationship" form:"contact_relationship"`
	ContactPhone        *int64  `json:"contact_phone" form:"contact_phone"`
	ContactEmail        *string `json:"contact_email" form:"contact_email"`
	ContactType         *string `json:"contact_type" form:"contact_type"`
}

// UpdateContact replaces only the supplied fields on a contact owned by the
// caller's profile.
func UpdateContact(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	input := new(ContactUpdateInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "Cannot parse request body"})
	}

	var contact models.ContactInformation
	if db.DB.Where("id = ?", input.ID).First(&contact).RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Contact information not found"})
	}

	if contact.ProfileID != profile.ID {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": "You are not authorized to update this contact information"})
	}

	updates := map[string]interface{}{}
	if input.ContactName != nil {
		updates["contact_name"] = *input.ContactName
	}
	if input.ContactRelationship != nil {
		updates["contact_relationship"] = *input.ContactRelationship
	}
	if input.ContactPhone != nil {
		updates["contact_phone"] = *input.ContactPhone
	}
	if input.ContactEmail != nil {
		updates["contact_email"] = *input.ContactEmail
	}
	if input.ContactType != nil {
		updates["contact_type"] = *input.ContactType
	}

	if len(updates) > 0 {
		if err := db.DB.Model(&contact).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "Contact information updated successfully"})
}

// DeleteContact removes a contact owned by the caller's profile.
func DeleteContact(c *fiber.Ctx) error {
	_, profile, err := currentProfile(c)
	if err != nil {
		return fail(c, err)
	}

	var contact models.ContactInformation
	if err := db.DB.First(&contact, c.Params("pk")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Contact information not found"})
	}

	if contact.ProfileID != profile.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You are not authorized to delete this contact information"})
	}

	if err := db.DB.Delete(&contact).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Contact information deleted successfully",
		"data":    contact,
	})
}
