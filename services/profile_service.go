package services

import (
	"errors"
	"strings"

	"dietchat-backend/models"
	"dietchat-backend/utils"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

type ProfileInput struct {
	Weight              float64  `json:"weight" binding:"required,gt=0"`
	Height              float64  `json:"height" binding:"required,gt=0"`
	Age                 int      `json:"age" binding:"required,gt=0"`
	Gender              string   `json:"gender" binding:"required,oneof=male female"`
	Goal                string   `json:"goal" binding:"required,oneof=lose_weight gain_muscle maintain"`
	ActivityLevel       string   `json:"activity_level" binding:"required,oneof=sedentary light moderate active very_active"`
	MealsPerDay         int      `json:"meals_per_day"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	PreferredFoods      []string `json:"preferred_foods"`
}

func (s *ProfileService) Get(userID uint) (*models.NutritionProfile, error) {
	var profile models.NutritionProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert saves the user's body stats and recomputes TDEE and macro targets
// from them on every save.
func (s *ProfileService) Upsert(userID uint, input ProfileInput) (*models.NutritionProfile, error) {
	tdee, err := utils.CalculateTDEE(input.Weight, input.Height, input.Age, input.Gender, input.ActivityLevel, input.Goal)
	if err != nil {
		return nil, err
	}
	protein, carbs, fat := utils.DefaultMacroTargets(tdee, input.Weight, input.Goal)

	mealsPerDay := input.MealsPerDay
	if mealsPerDay < 3 || mealsPerDay > 5 {
		mealsPerDay = 3
	}

	profile := models.NutritionProfile{
		UserID:              userID,
		Weight:              input.Weight,
		Height:              input.Height,
		Age:                 input.Age,
		Gender:              input.Gender,
		Goal:                input.Goal,
		ActivityLevel:       input.ActivityLevel,
		TDEE:                tdee,
		TargetCalories:      tdee,
		TargetProtein:       protein,
		TargetCarbs:         carbs,
		TargetFat:           fat,
		MealsPerDay:         mealsPerDay,
		DietaryRestrictions: strings.Join(input.DietaryRestrictions, ","),
		PreferredFoods:      strings.Join(input.PreferredFoods, ","),
	}

	var existing models.NutritionProfile
	err = s.db.
		Where("user_id = ?", userID).
		Assign(profile).
		FirstOrCreate(&existing).Error
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
