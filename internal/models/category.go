package models

// Category is either a system default (IsDefault set, no owner) visible to
// every user, or a custom category owned by exactly one user. Defaults are
// seeded at startup and are not editable through the API.
type Category struct {
	BaseModel

	Name      string `gorm:"not null"`
	Type      string `gorm:"not null;index"` // "INCOME" or "EXPENSE"
	Icon      string `gorm:"not null"`
	IsDefault bool   `gorm:"not null;default:false;index"`
	UserID    *uint  `gorm:"index"`
}
