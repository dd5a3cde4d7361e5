package controllers

import (
	"errors"
	"net/http"

	"dietchat-backend/models"
	"dietchat-backend/services"
	"dietchat-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MealController struct {
	meals    *services.MealService
	profiles *services.ProfileService
}

func NewMealController(meals *services.MealService, profiles *services.ProfileService) *MealController {
	return &MealController{meals: meals, profiles: profiles}
}

func (ctl *MealController) List(c *gin.Context) {
	userID := c.GetUint("userID")

	meals, err := ctl.meals.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (ctl *MealController) Get(c *gin.Context) {
	userID := c.GetUint("userID")

	meal, err := ctl.meals.Get(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

type mealInput struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Type        string            `json:"type" binding:"required,oneof=breakfast lunch dinner snack"`
	Foods       []models.MealFood `json:"foods" binding:"required,min=1"`
}

func (ctl *MealController) Create(c *gin.Context) {
	userID := c.GetUint("userID")

	var input mealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Foods:       input.Foods,
	}
	if err := ctl.meals.Create(userID, &meal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save meal"})
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (ctl *MealController) Update(c *gin.Context) {
	userID := c.GetUint("userID")

	var input mealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := models.Meal{
		ID:          c.Param("id"),
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Foods:       input.Foods,
		TotalMacros: models.SumFoodMacros(input.Foods),
	}
	if err := ctl.meals.Replace(userID, &meal); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update meal"})
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (ctl *MealController) Delete(c *gin.Context) {
	userID := c.GetUint("userID")

	if err := ctl.meals.Delete(userID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete meal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

// Distribution returns the per-meal macro budgets derived from the user's
// profile targets.
func (ctl *MealController) Distribution(c *gin.Context) {
	userID := c.GetUint("userID")

	profile, err := ctl.profiles.Get(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not set"})
		return
	}

	targets := utils.CalculateMealDistribution(
		profile.TargetCalories, profile.TargetProtein, profile.TargetCarbs, profile.TargetFat,
		profile.MealsPerDay,
	)
	c.JSON(http.StatusOK, gin.H{"meals_per_day": profile.MealsPerDay, "targets": targets})
}

// Validate runs the single-meal checks against an arbitrary candidate payload,
// so clients can preview quality before saving.
func (ctl *MealController) Validate(c *gin.Context) {
	var candidate map[string]any
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	corrected := utils.AutoCorrectTotals(candidate)
	result := utils.ValidateMeal(corrected)
	c.JSON(http.StatusOK, gin.H{"validation": result, "corrected": corrected})
}
