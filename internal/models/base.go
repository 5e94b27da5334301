package models

import "time"

// BaseModel is like gorm.Model but without soft deletes. Finance records are
// removed for real: a deleted budget must release its (user, category, month,
// year) slot and a deleted category must actually disappear.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
