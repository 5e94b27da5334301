package models

// Budget allocates an amount to one expense category for one calendar month.
// The composite unique index enforces the one-budget-per-tuple invariant at
// the storage layer, so two concurrent creates for the same tuple cannot both
// slip past the application-level existence check.
type Budget struct {
	BaseModel

	Amount     float64 `gorm:"not null"`
	Month      int     `gorm:"not null;uniqueIndex:idx_budgets_user_category_month_year"`
	Year       int     `gorm:"not null;uniqueIndex:idx_budgets_user_category_month_year"`
	CategoryID uint    `gorm:"not null;uniqueIndex:idx_budgets_user_category_month_year"`
	UserID     uint    `gorm:"not null;index;uniqueIndex:idx_budgets_user_category_month_year"`
}
