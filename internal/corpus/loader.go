package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrCorpusLoad is returned when the knowledge base cannot be loaded.
// Load failures are fatal at startup; no partial corpus is returned.
var ErrCorpusLoad = errors.New("corpus load failed")

// LoadError wraps a load failure with the source that caused it
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrCorpusLoad }

// File names of the three knowledge-base sources
const (
	WorkoutsFile  = "workouts.json"
	NutritionFile = "nutrition.json"
	TipsFile      = "tips.json"
)

type workoutsFile struct {
	Exercises []Exercise `json:"exercises"`
}

type nutritionFile struct {
	Meals []Meal `json:"meals"`
}

type tipsFile struct {
	Tips []Tip `json:"tips"`
}

// Load reads the three knowledge-base files from dir and returns the full
// document sequence in stable order: exercises, then meals, then tips, each
// in file order. A missing or malformed source, or a source with zero
// records, yields a *LoadError.
func Load(dir string) ([]Document, error) {
	var documents []Document

	var workouts workoutsFile
	if err := loadJSON(filepath.Join(dir, WorkoutsFile), &workouts); err != nil {
		return nil, err
	}
	if len(workouts.Exercises) == 0 {
		return nil, &LoadError{Source: WorkoutsFile, Err: errors.New("no exercises found")}
	}
	for _, ex := range workouts.Exercises {
		documents = append(documents, Document{
			ID:       ex.Name,
			Category: CategoryExercise,
			Text:     ex.text(),
			Payload:  ex,
		})
	}

	var nutrition nutritionFile
	if err := loadJSON(filepath.Join(dir, NutritionFile), &nutrition); err != nil {
		return nil, err
	}
	if len(nutrition.Meals) == 0 {
		return nil, &LoadError{Source: NutritionFile, Err: errors.New("no meals found")}
	}
	for _, meal := range nutrition.Meals {
		documents = append(documents, Document{
			ID:       meal.Name,
			Category: CategoryMeal,
			Text:     meal.text(),
			Payload:  meal,
		})
	}

	var tips tipsFile
	if err := loadJSON(filepath.Join(dir, TipsFile), &tips); err != nil {
		return nil, err
	}
	if len(tips.Tips) == 0 {
		return nil, &LoadError{Source: TipsFile, Err: errors.New("no tips found")}
	}
	for _, tip := range tips.Tips {
		documents = append(documents, Document{
			ID:       tip.Topic,
			Category: CategoryTip,
			Text:     tip.text(),
			Payload:  tip,
		})
	}

	return documents, nil
}

func loadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Source: filepath.Base(path), Err: err}
	}
	if err := json.Unmarshal(data, target); err != nil {
		return &LoadError{Source: filepath.Base(path), Err: fmt.Errorf("malformed JSON: %w", err)}
	}
	return nil
}
