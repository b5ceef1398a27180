package corpus

import (
	"fmt"
	"strings"
)

// Category identifies which knowledge base a document came from
type Category string

const (
	CategoryExercise Category = "exercise"
	CategoryMeal     Category = "meal"
	CategoryTip      Category = "tip"
)

// Categories lists all known categories in corpus order
var Categories = []Category{CategoryExercise, CategoryMeal, CategoryTip}

// ParseCategory validates a raw category string
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryExercise, CategoryMeal, CategoryTip:
		return Category(s), true
	}
	return "", false
}

// Exercise is one entry from workouts.json
type Exercise struct {
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscle_group"`
	Difficulty   string `json:"difficulty"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	Equipment    string `json:"equipment"`
}

// Meal is one entry from nutrition.json
type Meal struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Calories    int      `json:"calories"`
	Protein     int      `json:"protein"`
	Carbs       int      `json:"carbs"`
	Fat         int      `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Goals       []string `json:"goal"`
	Preparation string   `json:"preparation"`
}

// Tip is one entry from tips.json
type Tip struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// Document is a uniform, immutable knowledge-base entry. Text holds the
// fields used for matching; Payload is the original record, returned
// verbatim to callers once retrieved.
type Document struct {
	ID       string
	Category Category
	Text     string
	Payload  interface{}
}

func (e Exercise) text() string {
	return fmt.Sprintf(
		"Exercise: %s\nMuscle Group: %s\nDifficulty: %s\nDescription: %s\nInstructions: %s\nSets: %d | Reps: %s\nEquipment: %s",
		e.Name, e.MuscleGroup, e.Difficulty, e.Description, e.Instructions, e.Sets, e.Reps, e.Equipment)
}

func (m Meal) text() string {
	return fmt.Sprintf(
		"Meal: %s\nType: %s\nCalories: %d kcal\nProtein: %dg | Carbs: %dg | Fat: %dg\nIngredients: %s\nGood for: %s\nPreparation: %s",
		m.Name, m.Type, m.Calories, m.Protein, m.Carbs, m.Fat,
		strings.Join(m.Ingredients, ", "), strings.Join(m.Goals, ", "), m.Preparation)
}

func (t Tip) text() string {
	topic := t.Topic
	if topic == "" {
		topic = "General"
	}
	return fmt.Sprintf("Topic: %s\nCategory: %s\nTip: %s", topic, t.Category, t.Content)
}
