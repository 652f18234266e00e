package models

import (
	"time"
)

// OTPStorage holds the single live password-reset code for an email address.
// Requesting a new code upserts the row, so at most one exists per email.
type OTPStorage struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"size:255;unique;not null"`
	OTP            string    `json:"otp" gorm:"size:16;not null"`
	ExpirationTime int64     `json:"expiration_time" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (OTPStorage) TableName() string { return "otp_storages" }

// Expired reports whether the stored absolute expiry (epoch seconds) has
// passed. The expiry second itself still verifies.
func (o *OTPStorage) Expired(now time.Time) bool {
	return o.ExpirationTime < now.Unix()
}
