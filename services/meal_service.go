package services

import (
	"fmt"
	"strings"

	"dietchat-backend/models"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

func (s *MealService) Create(userID uint, meal *models.Meal) error {
	meal.UserID = userID
	if meal.TotalMacros == (models.Macros{}) {
		meal.TotalMacros = models.SumFoodMacros(meal.Foods)
	}
	return s.db.Create(meal).Error
}

func (s *MealService) List(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.
		Preload("Foods").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	return meals, err
}

func (s *MealService) ListRecent(userID uint, limit int) ([]models.Meal, error) {
	if limit <= 0 {
		limit = 5
	}
	var meals []models.Meal
	err := s.db.
		Preload("Foods").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&meals).Error
	return meals, err
}

func (s *MealService) Get(userID uint, mealID string) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.
		Preload("Foods").
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

// Replace overwrites a meal's fields and food rows in place, keeping its ID.
func (s *MealService) Replace(userID uint, meal *models.Meal) error {
	var existing models.Meal
	if err := s.db.
		Where("id = ? AND user_id = ?", meal.ID, userID).
		First(&existing).Error; err != nil {
		return err
	}

	existing.Name = meal.Name
	existing.Description = meal.Description
	existing.Type = meal.Type
	existing.TotalMacros = meal.TotalMacros
	if err := s.db.Save(&existing).Error; err != nil {
		return err
	}

	// drop old foods, re-create the new set
	if err := s.db.
		Where("meal_id = ?", existing.ID).
		Delete(&models.MealFood{}).Error; err != nil {
		return err
	}
	for i := range meal.Foods {
		meal.Foods[i].ID = ""
		meal.Foods[i].MealID = existing.ID
		if err := s.db.Create(&meal.Foods[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *MealService) Delete(userID uint, mealID string) error {
	if err := s.db.
		Where("meal_id = ?", mealID).
		Delete(&models.MealFood{}).Error; err != nil {
		return err
	}
	return s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		Delete(&models.Meal{}).Error
}

// BuildMealsContext renders the user's last meals as the compact text blob
// fed to both the intent classifier and the LLM prompt. One line per meal,
// newest first, each tagged with its [ID: …] marker so chat messages can
// reference it.
func (s *MealService) BuildMealsContext(userID uint) (string, error) {
	meals, err := s.ListRecent(userID, 5)
	if err != nil {
		return "", err
	}
	if len(meals) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("\n\nÚltimas refeições:\n")
	for _, meal := range meals {
		parts := make([]string, 0, len(meal.Foods))
		for _, f := range meal.Foods {
			parts = append(parts, fmt.Sprintf("%.0f%s %s", f.Quantity, f.Unit, f.Name))
		}
		sb.WriteString(fmt.Sprintf("- %s [ID: %s] (%s): %s | %.0fkcal, %.0fg prot\n",
			meal.Name, meal.ID, meal.Type,
			strings.Join(parts, ", "),
			meal.TotalMacros.Calories, meal.TotalMacros.Protein,
		))
	}
	return sb.String(), nil
}
