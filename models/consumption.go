package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyConsumption marks one meal food as eaten on a given date.
type DailyConsumption struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	MealID       string    `gorm:"type:uuid;index;not null"`
	MealFoodID   string    `gorm:"type:uuid;index;not null"`
	ConsumedDate time.Time `gorm:"index;not null"` // truncated to YYYY-MM-DD
}

// UserStreak counts consecutive days with at least one logged consumption.
type UserStreak struct {
	gorm.Model
	UserID           uint `gorm:"uniqueIndex;not null"`
	CurrentStreak    int
	BestStreak       int
	LastActivityDate time.Time
	StartDate        time.Time
}
