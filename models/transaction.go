package models

import (
	"time"
)

// Transaction is a ledger entry. Rows are never hard-deleted; delete flips
// IsDeleted only.
type Transaction struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	UserID      uint               `json:"user_id"`
	User        User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Amount      float64            `json:"amount" gorm:"not null"`
	Discount    float64            `json:"discount"`
	Method      *TransactionMethod `json:"method,omitempty" gorm:"type:varchar(20)"`
	Location    string             `json:"location,omitempty"`
	DateCharged time.Time          `json:"date_charged" gorm:"not null"`
	Refund      bool               `json:"refund" gorm:"default:false"`
	IsDeleted   bool               `json:"is_deleted" gorm:"not null;default:false"`
	Reference   string             `json:"reference" gorm:"size:36"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
