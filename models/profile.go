package models

import (
	"gorm.io/gorm"
)

// NutritionProfile holds each user's body stats and derived daily targets.
type NutritionProfile struct {
	gorm.Model
	UserID        uint    `gorm:"uniqueIndex;not null"`
	Weight        float64 // kg
	Height        float64 // cm
	Age           int
	Gender        string // "male" | "female"
	Goal          string // "lose_weight" | "gain_muscle" | "maintain"
	ActivityLevel string // "sedentary" | "light" | "moderate" | "active" | "very_active"

	TDEE           float64 // kcal/day, recomputed on every profile save
	TargetCalories float64
	TargetProtein  float64 // g
	TargetCarbs    float64 // g
	TargetFat      float64 // g
	MealsPerDay    int     `gorm:"default:3"`

	DietaryRestrictions string `gorm:"type:text"` // comma-separated
	PreferredFoods      string `gorm:"type:text"` // comma-separated
}
