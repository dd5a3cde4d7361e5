package controllers

import (
	"net/http"
	"time"

	"dietchat-backend/services"

	"github.com/gin-gonic/gin"
)

type ConsumptionController struct {
	consumption *services.ConsumptionService
}

func NewConsumptionController(consumption *services.ConsumptionService) *ConsumptionController {
	return &ConsumptionController{consumption: consumption}
}

type toggleInput struct {
	MealID     string `json:"meal_id" binding:"required"`
	MealFoodID string `json:"meal_food_id" binding:"required"`
	Date       string `json:"date"` // YYYY-MM-DD, defaults to today
}

func parseDateOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func (ctl *ConsumptionController) Toggle(c *gin.Context) {
	userID := c.GetUint("userID")

	var input toggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDateOrToday(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	consumed, err := ctl.consumption.Toggle(userID, input.MealID, input.MealFoodID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update consumption"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consumed": consumed})
}

func (ctl *ConsumptionController) Day(c *gin.Context) {
	userID := c.GetUint("userID")

	date, err := parseDateOrToday(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	summary, err := ctl.consumption.GetDay(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (ctl *ConsumptionController) Streak(c *gin.Context) {
	userID := c.GetUint("userID")

	streak, err := ctl.consumption.GetStreak(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load streak"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"current_streak": streak.CurrentStreak,
		"best_streak":    streak.BestStreak,
		"last_activity":  streak.LastActivityDate,
	})
}
