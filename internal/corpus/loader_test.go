package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcoach/backend/internal/corpus"
)

const workoutsJSON = `{
  "exercises": [
    {"name": "Push-Up", "muscle_group": "chest", "difficulty": "beginner",
     "description": "Bodyweight chest exercise", "instructions": "Lower and push up",
     "sets": 3, "reps": "10-15", "equipment": "none"},
    {"name": "Squat", "muscle_group": "legs", "difficulty": "beginner",
     "description": "Lower body exercise", "instructions": "Sit back and stand",
     "sets": 3, "reps": "12", "equipment": "none"}
  ]
}`

const nutritionJSON = `{
  "meals": [
    {"name": "Chicken Rice", "type": "lunch", "calories": 550, "protein": 45,
     "carbs": 55, "fat": 12, "ingredients": ["chicken", "rice"],
     "goal": ["build_muscle"], "preparation": "Grill and serve"}
  ]
}`

const tipsJSON = `{
  "tips": [
    {"topic": "Hydration", "category": "nutrition", "content": "Drink water daily"}
  ]
}`

func writeDataDir(t *testing.T, workouts, nutrition, tips string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		corpus.WorkoutsFile:  workouts,
		corpus.NutritionFile: nutrition,
		corpus.TipsFile:      tips,
	}
	for name, content := range files {
		if content == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeDataDir(t, workoutsJSON, nutritionJSON, tipsJSON)

	docs, err := corpus.Load(dir)
	require.NoError(t, err)
	require.Len(t, docs, 4)

	// Stable order: exercises, meals, tips
	assert.Equal(t, corpus.CategoryExercise, docs[0].Category)
	assert.Equal(t, "Push-Up", docs[0].ID)
	assert.Equal(t, corpus.CategoryExercise, docs[1].Category)
	assert.Equal(t, "Squat", docs[1].ID)
	assert.Equal(t, corpus.CategoryMeal, docs[2].Category)
	assert.Equal(t, "Chicken Rice", docs[2].ID)
	assert.Equal(t, corpus.CategoryTip, docs[3].Category)
	assert.Equal(t, "Hydration", docs[3].ID)

	// Text carries the matchable fields
	assert.Contains(t, docs[0].Text, "Push-Up")
	assert.Contains(t, docs[0].Text, "chest")
	assert.Contains(t, docs[2].Text, "chicken, rice")
	assert.Contains(t, docs[3].Text, "Drink water daily")

	// Payload is the original typed record
	exercise, ok := docs[0].Payload.(corpus.Exercise)
	require.True(t, ok)
	assert.Equal(t, 3, exercise.Sets)
	meal, ok := docs[2].Payload.(corpus.Meal)
	require.True(t, ok)
	assert.Equal(t, 550, meal.Calories)
}

func TestLoadStableAcrossLoads(t *testing.T) {
	dir := writeDataDir(t, workoutsJSON, nutritionJSON, tipsJSON)

	first, err := corpus.Load(dir)
	require.NoError(t, err)
	second, err := corpus.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadMissingSource(t *testing.T) {
	dir := writeDataDir(t, workoutsJSON, nutritionJSON, "")

	_, err := corpus.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, corpus.ErrCorpusLoad))

	var loadErr *corpus.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, corpus.TipsFile, loadErr.Source)
}

func TestLoadMalformedSource(t *testing.T) {
	dir := writeDataDir(t, "{not json", nutritionJSON, tipsJSON)

	_, err := corpus.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, corpus.ErrCorpusLoad))
}

func TestLoadEmptyCategory(t *testing.T) {
	dir := writeDataDir(t, `{"exercises": []}`, nutritionJSON, tipsJSON)

	_, err := corpus.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, corpus.ErrCorpusLoad))

	var loadErr *corpus.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, corpus.WorkoutsFile, loadErr.Source)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  corpus.Category
		ok    bool
	}{
		{"exercise", corpus.CategoryExercise, true},
		{"meal", corpus.CategoryMeal, true},
		{"tip", corpus.CategoryTip, true},
		{"cardio", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := corpus.ParseCategory(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}
