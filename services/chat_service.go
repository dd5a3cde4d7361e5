package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"dietchat-backend/models"
	"dietchat-backend/utils"

	"gorm.io/gorm"
)

const baseSystemPrompt = `Você é um nutricionista virtual que monta e ajusta planos alimentares em português.

Regras:
- Quando o usuário pedir refeições, responda com uma breve explicação seguida do JSON das refeições.
- Cada refeição DEVE seguir exatamente este formato:
{"meal_type":"breakfast","name":"...","description":"...","foods":[{"name":"...","quantity":100,"unit":"g","protein":0,"carbs":0,"fat":0,"calories":0}],"totals":{"protein":0,"carbs":0,"fat":0,"calories":0}}
- meal_type é sempre um de: breakfast, lunch, dinner, snack.
- Use quantidades realistas e unidades comuns (g, ml, unidade, fatia, colher de sopa).
- Os totais devem ser a soma dos alimentos.
- Para perguntas gerais de nutrição, responda normalmente, sem JSON.`

// ChatResult is everything the chat endpoint returns for one user message.
type ChatResult struct {
	Reply       string                   `json:"reply"`
	Intent      utils.UserIntent         `json:"intent"`
	SavedMeals  []models.Meal            `json:"saved_meals,omitempty"`
	Validations []utils.ValidationResult `json:"validations,omitempty"`
	Plan        *utils.PlanValidation    `json:"plan,omitempty"`
}

// ChatService runs the full chat turn: classify intent, prompt the model with
// the user's profile and recent meals, validate what comes back, and persist
// the accepted meals.
type ChatService struct {
	db       *gorm.DB
	groq     *GroqService
	meals    *MealService
	profiles *ProfileService
	hub      *RealtimeHub
}

func NewChatService(db *gorm.DB, groq *GroqService, meals *MealService, profiles *ProfileService, hub *RealtimeHub) *ChatService {
	return &ChatService{db: db, groq: groq, meals: meals, profiles: profiles, hub: hub}
}

// History returns the user's recent chat turns, oldest first.
func (s *ChatService) History(userID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var msgs []models.ChatMessage
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// HandleMessage processes one user chat message end to end and returns the
// assistant's reply plus whatever meals were created or updated along the way.
func (s *ChatService) HandleMessage(ctx context.Context, userID uint, text string) (*ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty message")
	}

	userMsg := models.ChatMessage{UserID: userID, Role: "user", Content: text}
	if err := s.db.Create(&userMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	profile, err := s.profiles.Get(userID)
	if err != nil {
		return nil, err
	}

	mealsContext, err := s.meals.BuildMealsContext(userID)
	if err != nil {
		log.Printf("chat: meals context for user %d: %v", userID, err)
		mealsContext = ""
	}

	intent := utils.DetectIntent(text, mealsContext)

	systemPrompt := s.buildSystemPrompt(profile, mealsContext, intent)

	history, err := s.recentHistory(userID)
	if err != nil {
		return nil, err
	}

	reply, err := s.groq.Complete(ctx, history, systemPrompt)
	if err != nil {
		return nil, err
	}

	result := &ChatResult{
		Reply:  utils.StripJSON(reply),
		Intent: intent,
	}

	candidates := utils.ParseMealCandidates(reply)
	var accepted []models.Meal
	for _, candidate := range candidates {
		corrected := utils.AutoCorrectTotals(candidate)
		validation := utils.ValidateMeal(corrected)
		result.Validations = append(result.Validations, validation)
		if !validation.Valid {
			log.Printf("chat: rejected meal for user %d: %v", userID, validation.Errors)
			continue
		}
		accepted = append(accepted, utils.CandidateToMeal(corrected))
	}

	switch intent.Type {
	case utils.IntentEdit, utils.IntentSubstitute, utils.IntentAdjust:
		saved, err := s.applyEdit(userID, intent, accepted, profile)
		if err != nil {
			return nil, err
		}
		result.SavedMeals = saved
	default:
		saved, plan, err := s.saveNewMeals(userID, accepted, profile)
		if err != nil {
			return nil, err
		}
		result.SavedMeals = saved
		result.Plan = plan
	}

	assistantMsg := models.ChatMessage{UserID: userID, Role: "assistant", Content: result.Reply}
	if err := s.db.Create(&assistantMsg).Error; err != nil {
		log.Printf("chat: failed to save assistant message for user %d: %v", userID, err)
	}

	return result, nil
}

// saveNewMeals persists freshly generated meals, scaling a multi-meal plan to
// the user's calorie target first.
func (s *ChatService) saveNewMeals(userID uint, accepted []models.Meal, profile *models.NutritionProfile) ([]models.Meal, *utils.PlanValidation, error) {
	if len(accepted) == 0 {
		return nil, nil, nil
	}

	var plan *utils.PlanValidation
	if profile != nil && len(accepted) > 1 {
		accepted = utils.ScaleMealsToTarget(accepted, profile.TargetCalories)
		pv := utils.ValidateMealPlan(accepted, profile)
		plan = &pv
	}

	saved := make([]models.Meal, 0, len(accepted))
	for i := range accepted {
		if err := s.meals.Create(userID, &accepted[i]); err != nil {
			return saved, plan, fmt.Errorf("failed to save meal %q: %w", accepted[i].Name, err)
		}
		saved = append(saved, accepted[i])
	}

	s.hub.Broadcast(userID, "meal.created", saved)
	return saved, plan, nil
}

// applyEdit replaces the referenced meal with the model's revision and
// rebalances the rest of the day around the calorie change.
func (s *ChatService) applyEdit(userID uint, intent utils.UserIntent, accepted []models.Meal, profile *models.NutritionProfile) ([]models.Meal, error) {
	if len(accepted) == 0 {
		return nil, nil
	}
	edited := accepted[0]
	edited.ID = intent.MealID

	mealsPerDay := 3
	if profile != nil && profile.MealsPerDay > 0 {
		mealsPerDay = profile.MealsPerDay
	}
	currentPlan, err := s.meals.ListRecent(userID, mealsPerDay)
	if err != nil {
		return nil, err
	}

	// Without an ID match fall back to replacing by meal type.
	if edited.ID == "" {
		for _, m := range currentPlan {
			if m.Type == edited.Type {
				edited.ID = m.ID
				break
			}
		}
	}
	if edited.ID == "" {
		// Nothing to edit; treat it as a new meal.
		if err := s.meals.Create(userID, &edited); err != nil {
			return nil, err
		}
		s.hub.Broadcast(userID, "meal.created", []models.Meal{edited})
		return []models.Meal{edited}, nil
	}

	rebalanced := utils.RecalculatePlanAfterEdit(currentPlan, edited)

	changed := make([]models.Meal, 0, len(rebalanced))
	existing := make(map[string]models.Meal, len(currentPlan))
	for _, m := range currentPlan {
		existing[m.ID] = m
	}
	for i := range rebalanced {
		before, ok := existing[rebalanced[i].ID]
		if ok && rebalanced[i].ID != edited.ID && before.TotalMacros == rebalanced[i].TotalMacros {
			continue // untouched by the rebalance
		}
		if err := s.meals.Replace(userID, &rebalanced[i]); err != nil {
			return changed, fmt.Errorf("failed to update meal %s: %w", rebalanced[i].ID, err)
		}
		changed = append(changed, rebalanced[i])
	}

	s.hub.Broadcast(userID, "meal.updated", changed)
	return changed, nil
}

func (s *ChatService) buildSystemPrompt(profile *models.NutritionProfile, mealsContext string, intent utils.UserIntent) string {
	var sb strings.Builder
	sb.WriteString(baseSystemPrompt)

	if profile != nil {
		sb.WriteString(fmt.Sprintf(
			"\n\nPerfil do usuário:\n- Objetivo: %s\n- Meta diária: %.0f kcal (%.0fg prot, %.0fg carb, %.0fg gord)\n- Refeições por dia: %d",
			profile.Goal,
			profile.TargetCalories, profile.TargetProtein, profile.TargetCarbs, profile.TargetFat,
			profile.MealsPerDay,
		))
		if profile.DietaryRestrictions != "" {
			sb.WriteString("\n- Restrições: " + profile.DietaryRestrictions)
		}
		if profile.PreferredFoods != "" {
			sb.WriteString("\n- Alimentos preferidos: " + profile.PreferredFoods)
		}

		targets := utils.CalculateMealDistribution(
			profile.TargetCalories, profile.TargetProtein, profile.TargetCarbs, profile.TargetFat,
			profile.MealsPerDay,
		)
		sb.WriteString("\n\nMetas por refeição:")
		for _, mt := range models.MealTypes {
			budget := targets.ForType(mt)
			if budget.Calories == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("\n- %s: %s", mt, utils.FormatMealTargets(mt, targets)))
		}
	}

	if mealsContext != "" {
		sb.WriteString(mealsContext)
	}

	sb.WriteString(utils.IntentPrompt(intent))
	return sb.String()
}

// recentHistory loads the last turns as Groq messages, oldest first.
func (s *ChatService) recentHistory(userID uint) ([]GroqMessage, error) {
	msgs, err := s.History(userID, maxHistoryMessages)
	if err != nil {
		return nil, err
	}
	out := make([]GroqMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, GroqMessage{Role: m.Role, Content: m.Content})
	}
	return out, nil
}
