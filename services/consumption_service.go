package services

import (
	"errors"
	"time"

	"dietchat-backend/models"

	"gorm.io/gorm"
)

type ConsumptionService struct {
	db *gorm.DB
}

func NewConsumptionService(db *gorm.DB) *ConsumptionService {
	return &ConsumptionService{db: db}
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// Toggle flips whether a meal food counts as eaten on the given date.
// Returns true when the food is now marked consumed.
func (s *ConsumptionService) Toggle(userID uint, mealID, mealFoodID string, date time.Time) (bool, error) {
	day := dayStartLocal(date)

	var existing models.DailyConsumption
	err := s.db.
		Where("user_id = ? AND meal_food_id = ? AND consumed_date = ?", userID, mealFoodID, day).
		First(&existing).Error

	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	entry := models.DailyConsumption{
		UserID:       userID,
		MealID:       mealID,
		MealFoodID:   mealFoodID,
		ConsumedDate: day,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return false, err
	}

	if err := s.updateStreak(userID, day); err != nil {
		return true, err
	}
	return true, nil
}

// DaySummary aggregates what was eaten on a date against the user's targets.
type DaySummary struct {
	Date     string        `json:"date"`
	Consumed models.Macros `json:"consumed"`
	FoodIDs  []string      `json:"food_ids"`
}

func (s *ConsumptionService) GetDay(userID uint, date time.Time) (*DaySummary, error) {
	day := dayStartLocal(date)

	var entries []models.DailyConsumption
	if err := s.db.
		Where("user_id = ? AND consumed_date = ?", userID, day).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	summary := &DaySummary{Date: day.Format("2006-01-02"), FoodIDs: make([]string, 0, len(entries))}
	for _, e := range entries {
		summary.FoodIDs = append(summary.FoodIDs, e.MealFoodID)

		var food models.MealFood
		if err := s.db.First(&food, "id = ?", e.MealFoodID).Error; err != nil {
			continue // food may have been replaced by a meal edit
		}
		summary.Consumed.Protein += food.Macros.Protein
		summary.Consumed.Carbs += food.Macros.Carbs
		summary.Consumed.Fat += food.Macros.Fat
		summary.Consumed.Calories += food.Macros.Calories
	}
	return summary, nil
}

func (s *ConsumptionService) GetStreak(userID uint) (*models.UserStreak, error) {
	var streak models.UserStreak
	err := s.db.Where("user_id = ?", userID).First(&streak).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserStreak{UserID: userID}, nil
		}
		return nil, err
	}
	return &streak, nil
}

// updateStreak advances the adherence streak after a consumption on `day`:
// same-day repeats are no-ops, a continuation from yesterday increments, and
// any gap restarts the count at 1.
func (s *ConsumptionService) updateStreak(userID uint, day time.Time) error {
	streak, err := s.GetStreak(userID)
	if err != nil {
		return err
	}

	last := dayStartLocal(streak.LastActivityDate)
	yesterday := day.AddDate(0, 0, -1)

	switch {
	case streak.LastActivityDate.IsZero():
		streak.CurrentStreak = 1
		streak.StartDate = day
	case last.Equal(day):
		return nil
	case last.Equal(yesterday):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
		streak.StartDate = day
	}

	if streak.CurrentStreak > streak.BestStreak {
		streak.BestStreak = streak.CurrentStreak
	}
	streak.LastActivityDate = day
	streak.UserID = userID

	if streak.ID == 0 {
		return s.db.Create(streak).Error
	}
	return s.db.Save(streak).Error
}
