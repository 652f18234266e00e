package db

import (
	"fmt"
	"log"

	"github.com/usualmarts/sfds-api/models"
)

// Migrate runs AutoMigrate over every table. Init must have been called.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.ContactInformation{},
		&models.PickupLocation{},
		&models.StudentAppointment{},
		&models.InstructorAvailability{},
		&models.Transaction{},
		&models.School{},
		&models.OTPStorage{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
