package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Macros is the four-field nutrition record used throughout the app.
// Soft invariant: Calories ≈ Protein*4 + Carbs*4 + Fat*9 (±20%), checked by
// the validator but never enforced structurally.
type Macros struct {
	Protein  float64 `json:"protein"`  // g
	Carbs    float64 `json:"carbs"`    // g
	Fat      float64 `json:"fat"`      // g
	Calories float64 `json:"calories"` // kcal
}

// One Meal (breakfast/lunch/snack/dinner), authored by the AI assistant or
// edited by the user. The ID is the token that appears as [ID: …] in the
// chat context blob.
type Meal struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Type        string `gorm:"size:16;not null" json:"type"` // breakfast|lunch|snack|dinner

	Foods       []MealFood `gorm:"constraint:OnDelete:CASCADE" json:"foods"`
	TotalMacros Macros     `gorm:"embedded;embeddedPrefix:total_" json:"totalMacros"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MealFood is one food row inside a meal, with its nutrition snapshot.
type MealFood struct {
	ID       string  `gorm:"type:uuid;primaryKey" json:"id"`
	MealID   string  `gorm:"type:uuid;index;not null" json:"meal_id"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `gorm:"size:32" json:"unit"` // g, colher, xícara, unidade, filé, peito, …
	Macros   Macros  `gorm:"embedded" json:"macros"`
	Notes    string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *MealFood) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// MealTypes is the closed meal-type enum.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

func IsMealType(t string) bool {
	for _, v := range MealTypes {
		if v == t {
			return true
		}
	}
	return false
}

// SumFoodMacros recomputes the aggregate macros from the per-food rows.
func SumFoodMacros(foods []MealFood) Macros {
	var out Macros
	for _, f := range foods {
		out.Protein += f.Macros.Protein
		out.Carbs += f.Macros.Carbs
		out.Fat += f.Macros.Fat
		out.Calories += f.Macros.Calories
	}
	return out
}
