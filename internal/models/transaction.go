package models

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction is a single money movement. Amount is always a positive
// magnitude rounded to two decimal places; the sign is implied by Type.
//
// CategoryID carries no foreign key constraint on purpose: deleting a
// category leaves its transactions in place with a dangling reference.
type Transaction struct {
	BaseModel

	Amount      float64        `gorm:"not null"`
	Type        string         `gorm:"not null;index"` // "INCOME" or "EXPENSE"
	Description string         `gorm:"not null"`
	Date        time.Time      `gorm:"not null;index"`
	Tags        datatypes.JSON `gorm:"type:jsonb"`
	CategoryID  uint           `gorm:"not null;index"`
	UserID      uint           `gorm:"not null;index"`
}
