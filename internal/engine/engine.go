package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/smartcoach/backend/internal/config"
	"github.com/smartcoach/backend/internal/corpus"
	"github.com/smartcoach/backend/internal/prompt"
	"github.com/smartcoach/backend/internal/provider"
	"github.com/smartcoach/backend/internal/search"
)

// maxSources caps how many retrieved entries are reported back to the caller
const maxSources = 3

// Engine composes retrieval, prompt construction and LLM generation
type Engine struct {
	Config *config.Config
	Logger *logrus.Entry
	Index  *search.Index
	LLM    provider.LLMProvider
}

// FitnessPlanRequest describes a combined workout + nutrition plan request
type FitnessPlanRequest struct {
	Goal          string
	FitnessLevel  string
	DurationWeeks int
	Preferences   map[string]interface{}
}

// WorkoutPlanRequest describes a workout plan request
type WorkoutPlanRequest struct {
	FitnessLevel    string
	Goal            string
	Equipment       []string
	DurationMinutes int
	DaysPerWeek     int
}

// MealPlanRequest describes a meal plan request
type MealPlanRequest struct {
	Goal         string
	Restrictions []string
	Calories     int
	MealsPerDay  int
}

// NewEngine wires the engine with the LLM provider selected by config.
// Without an API key, remote providers would only produce auth errors, so
// the engine falls back to the mock provider.
func NewEngine(cfg *config.Config, logger *logrus.Entry, index *search.Index) *Engine {
	var llm provider.LLMProvider
	switch cfg.LLM.Provider {
	case "openai":
		llm = provider.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKey)
	case "ollama":
		llm = provider.NewOllamaProvider(cfg.LLM.BaseURL, cfg.LLM.Model)
	case "gemini":
		llm = provider.NewGeminiProvider(cfg.LLM.BaseURL, cfg.LLM.Model, cfg.LLM.APIKey)
	default:
		logger.Warnf("Unknown LLM provider %q, using mock responses", cfg.LLM.Provider)
		llm = provider.NewMockProvider()
	}

	if llm.Name() != "ollama" && llm.Name() != "mock" && cfg.LLM.APIKey == "" {
		logger.Warn("No LLM API key configured, using mock responses")
		llm = provider.NewMockProvider()
	}

	return &Engine{
		Config: cfg,
		Logger: logger,
		Index:  index,
		LLM:    llm,
	}
}

// Answer performs the full RAG flow for a free-text question:
// retrieve -> build prompt -> generate. It returns the model response and
// the knowledge-base entries that informed it.
func (e *Engine) Answer(ctx context.Context, query string) (string, []string, error) {
	docs, err := e.retrieveTexts(query, "", e.Config.Retrieval.TopK)
	if err != nil {
		return "", nil, err
	}

	answer, err := e.LLM.Generate(ctx, prompt.Answer(query, docs))
	if err != nil {
		return "", nil, err
	}

	if len(docs) > maxSources {
		docs = docs[:maxSources]
	}
	return answer, docs, nil
}

// FitnessPlan generates a combined workout + nutrition plan
func (e *Engine) FitnessPlan(ctx context.Context, req FitnessPlanRequest) (map[string]interface{}, error) {
	if req.DurationWeeks <= 0 {
		req.DurationWeeks = 4
	}

	workouts, err := e.retrieveTexts(
		fmt.Sprintf("%s %s workout exercises", req.FitnessLevel, req.Goal),
		corpus.CategoryExercise, e.Config.Retrieval.PlanTopK)
	if err != nil {
		return nil, err
	}
	meals, err := e.retrieveTexts(
		fmt.Sprintf("%s nutrition meals", req.Goal),
		corpus.CategoryMeal, e.Config.Retrieval.PlanTopK)
	if err != nil {
		return nil, err
	}

	p := prompt.FitnessPlan(req.Goal, req.FitnessLevel, req.DurationWeeks, req.Preferences, workouts, meals)
	response, err := e.LLM.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	return prompt.ParsePlanJSON(response, map[string]interface{}{
		"plan_name":      titleGoal(req.Goal) + " Plan",
		"goal":           req.Goal,
		"duration_weeks": req.DurationWeeks,
		"description":    response,
	}), nil
}

// WorkoutPlan generates a standalone workout plan
func (e *Engine) WorkoutPlan(ctx context.Context, req WorkoutPlanRequest) (map[string]interface{}, error) {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 45
	}
	if req.DaysPerWeek <= 0 {
		req.DaysPerWeek = 3
	}

	query := fmt.Sprintf("%s %s exercises %s", req.FitnessLevel, req.Goal, strings.Join(req.Equipment, " "))
	docs, err := e.retrieveTexts(query, corpus.CategoryExercise, e.Config.Retrieval.PlanTopK)
	if err != nil {
		return nil, err
	}

	p := prompt.WorkoutPlan(req.FitnessLevel, req.Goal, req.Equipment, req.DurationMinutes, req.DaysPerWeek, docs)
	response, err := e.LLM.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	return prompt.ParsePlanJSON(response, map[string]interface{}{
		"name":          titleGoal(req.Goal) + " Workout Plan",
		"days_per_week": req.DaysPerWeek,
		"description":   response,
	}), nil
}

// MealPlan generates a daily meal plan
func (e *Engine) MealPlan(ctx context.Context, req MealPlanRequest) (map[string]interface{}, error) {
	if req.MealsPerDay <= 0 {
		req.MealsPerDay = 3
	}

	query := fmt.Sprintf("%s meals nutrition %s", req.Goal, strings.Join(req.Restrictions, " "))
	docs, err := e.retrieveTexts(query, corpus.CategoryMeal, e.Config.Retrieval.PlanTopK)
	if err != nil {
		return nil, err
	}

	p := prompt.MealPlan(req.Goal, req.Restrictions, req.Calories, req.MealsPerDay, docs)
	response, err := e.LLM.Generate(ctx, p)
	if err != nil {
		return nil, err
	}

	return prompt.ParsePlanJSON(response, map[string]interface{}{
		"name":          titleGoal(req.Goal) + " Meal Plan",
		"goal":          req.Goal,
		"meals_per_day": req.MealsPerDay,
		"description":   response,
	}), nil
}

// retrieveTexts runs a ranked retrieval and keeps hits above the configured
// score floor, returning their knowledge-base text blocks.
func (e *Engine) retrieveTexts(query string, category corpus.Category, k int) ([]string, error) {
	hits, err := e.Index.Retrieve(query, category, k)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		if hit.Score < e.Config.Retrieval.MinScore {
			continue
		}
		texts = append(texts, hit.Document.Text)
	}

	// Plan construction still needs material when the query shares no
	// vocabulary with the corpus; fall back to listing the category.
	if len(texts) == 0 && category != "" {
		docs, err := e.Index.RetrieveAll(category)
		if err != nil {
			return nil, err
		}
		if len(docs) > k {
			docs = docs[:k]
		}
		for _, doc := range docs {
			texts = append(texts, doc.Text)
		}
	}
	return texts, nil
}

// titleGoal turns "build_muscle" into "Build Muscle" for fallback plan names
func titleGoal(goal string) string {
	words := strings.Split(strings.ReplaceAll(goal, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
