package models

import (
	"time"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FirstName       string    `json:"first_name" gorm:"size:50;not null"`
	MiddleName      string    `json:"middle_name,omitempty" gorm:"size:50"`
	LastName        string    `json:"last_name,omitempty" gorm:"size:50"`
	Email           string    `json:"email" gorm:"size:255;unique"`
	Password        string    `json:"-"`
	InitialPassword string    `json:"-"`
	IsVerified      bool      `json:"is_verified" gorm:"default:false"`
	Role            Role      `json:"role" gorm:"type:varchar(20);not null;default:'STUDENT'"`
	InstructorID    *uint     `json:"instructor_id,omitempty"`
	Schools         []School  `json:"schools,omitempty" gorm:"many2many:user_schools;"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type Profile struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	UserID              uint       `json:"user_id"`
	User                User       `json:"-" gorm:"foreignKey:UserID"`
	Address             string     `json:"address,omitempty"`
	Apartment           string     `json:"apartment,omitempty"`
	City                string     `json:"city,omitempty"`
	State               string     `json:"state,omitempty"`
	ZipCode             *int       `json:"zip_code,omitempty"`
	DOB                 *time.Time `json:"dob,omitempty" gorm:"type:date"`
	Gender              *Gender    `json:"gender,omitempty" gorm:"type:varchar(10)"`
	CellPhone           *int64     `json:"cell_phone,omitempty"`
	OfficeNote          string     `json:"office_note,omitempty"`
	CertificateReceived bool       `json:"certificate_received" gorm:"default:false"`
	ProfilePicture      string     `json:"profile_picture,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (Profile) TableName() string { return "user_profiles" }

// ContactInformation is owned by a Profile and deleted independently of it.
type ContactInformation struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	ProfileID           uint      `json:"profile_id"`
	ContactName         string    `json:"contact_name" gorm:"size:255"`
	ContactRelationship string    `json:"contact_relationship,omitempty" gorm:"size:255"`
	ContactPhone        *int64    `json:"contact_phone,omitempty"`
	ContactEmail        string    `json:"contact_email,omitempty"`
	ContactType         string    `json:"contact_type,omitempty" gorm:"size:255"`
	CreatedByID         *uint     `json:"created_by_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (ContactInformation) TableName() string { return "user_contact_informations" }

type PickupLocation struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ProfileID   uint      `json:"profile_id"`
	Name        string    `json:"name" gorm:"size:255"`
	Address     string    `json:"address,omitempty" gorm:"size:255"`
	Apartment   string    `json:"apartment,omitempty" gorm:"size:255"`
	City        string    `json:"city,omitempty" gorm:"size:255"`
	CreatedByID *uint     `json:"created_by_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PickupLocation) TableName() string { return "pickup_locations" }
