// Package prompt builds the text prompts sent to the LLM provider and
// parses structured plans out of model responses.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer builds the chat prompt from the user question and retrieved
// knowledge-base entries.
func Answer(question string, contextDocs []string) string {
	contextText := "No specific information found in knowledge base."
	if len(contextDocs) > 0 {
		contextText = strings.Join(contextDocs, "\n---\n")
	}

	return "You are SmartCoach, a knowledgeable and friendly fitness and nutrition AI assistant.\n\n" +
		"RELEVANT INFORMATION FROM KNOWLEDGE BASE:\n" + contextText + "\n\n" +
		"USER QUESTION: " + question + "\n\n" +
		"INSTRUCTIONS:\n" +
		"- Provide a helpful, accurate, and encouraging response\n" +
		"- Use the relevant information above when applicable\n" +
		"- If the information doesn't fully answer the question, use your general fitness knowledge\n" +
		"- Keep the response concise but complete\n" +
		"- Use bullet points or numbered lists for clarity when appropriate\n" +
		"- Always encourage safe fitness practices\n\n" +
		"YOUR RESPONSE:"
}

// FitnessPlan builds the prompt for a combined workout + nutrition plan
func FitnessPlan(goal, fitnessLevel string, durationWeeks int, preferences map[string]interface{}, workoutDocs, mealDocs []string) string {
	prefs := "None specified"
	if len(preferences) > 0 {
		prefs = fmt.Sprintf("%v", preferences)
	}

	return "You are SmartCoach AI creating a personalized fitness plan.\n\n" +
		"USER PROFILE:\n" +
		"- Goal: " + goal + "\n" +
		"- Fitness Level: " + fitnessLevel + "\n" +
		fmt.Sprintf("- Duration: %d weeks\n", durationWeeks) +
		"- Preferences: " + prefs + "\n\n" +
		"AVAILABLE EXERCISES:\n" + strings.Join(head(workoutDocs, 5), "\n") + "\n\n" +
		"AVAILABLE MEALS:\n" + strings.Join(head(mealDocs, 5), "\n") + "\n\n" +
		fmt.Sprintf("Create a structured %d-week fitness plan. Return ONLY valid JSON:\n", durationWeeks) +
		`{
    "plan_name": "Name of the plan",
    "goal": "` + goal + `",
    "duration_weeks": ` + fmt.Sprint(durationWeeks) + `,
    "weekly_schedule": [
        {
            "day": "Monday",
            "workout": {
                "name": "Workout name",
                "exercises": [
                    {"name": "Exercise", "sets": 3, "reps": "10-12"}
                ],
                "duration_minutes": 45
            },
            "nutrition": {
                "calories_target": 2000,
                "meals": ["Breakfast suggestion", "Lunch", "Dinner"]
            }
        }
    ],
    "tips": ["Tip 1", "Tip 2"]
}`
}

// WorkoutPlan builds the prompt for a standalone workout plan
func WorkoutPlan(fitnessLevel, goal string, equipment []string, durationMinutes, daysPerWeek int, docs []string) string {
	equipmentStr := "bodyweight only"
	if len(equipment) > 0 {
		equipmentStr = strings.Join(equipment, ", ")
	}

	return "Create a workout plan:\n" +
		"- Fitness Level: " + fitnessLevel + "\n" +
		"- Goal: " + goal + "\n" +
		"- Equipment: " + equipmentStr + "\n" +
		fmt.Sprintf("- Duration: %d minutes per workout\n", durationMinutes) +
		fmt.Sprintf("- Days per Week: %d\n\n", daysPerWeek) +
		"EXERCISE DATABASE:\n" + strings.Join(head(docs, 7), "\n") + "\n\n" +
		"Return ONLY valid JSON:\n" +
		`{
    "name": "Plan name",
    "days_per_week": ` + fmt.Sprint(daysPerWeek) + `,
    "workouts": [
        {
            "day": 1,
            "name": "Day name",
            "duration_minutes": ` + fmt.Sprint(durationMinutes) + `,
            "exercises": [
                {"name": "Exercise", "sets": 3, "reps": "10-12", "rest_seconds": 60}
            ],
            "warmup": "5 min cardio",
            "cooldown": "5 min stretching"
        }
    ]
}`
}

// MealPlan builds the prompt for a daily meal plan
func MealPlan(goal string, restrictions []string, calories, mealsPerDay int, docs []string) string {
	restrictionsStr := "none"
	if len(restrictions) > 0 {
		restrictionsStr = strings.Join(restrictions, ", ")
	}
	caloriesStr := "appropriate for goal"
	if calories > 0 {
		caloriesStr = fmt.Sprintf("%d kcal", calories)
	}
	dailyCalories := calories
	if dailyCalories == 0 {
		dailyCalories = 2000
	}

	return "Create a daily meal plan:\n" +
		"- Goal: " + goal + "\n" +
		"- Dietary Restrictions: " + restrictionsStr + "\n" +
		"- Target Calories: " + caloriesStr + "\n" +
		fmt.Sprintf("- Meals per Day: %d\n\n", mealsPerDay) +
		"MEAL DATABASE:\n" + strings.Join(head(docs, 7), "\n") + "\n\n" +
		"Return ONLY valid JSON:\n" +
		`{
    "name": "Plan name",
    "goal": "` + goal + `",
    "daily_calories": ` + fmt.Sprint(dailyCalories) + `,
    "meals_per_day": ` + fmt.Sprint(mealsPerDay) + `,
    "daily_plan": [
        {
            "meal": "Breakfast",
            "time": "7:00 AM",
            "name": "Meal name",
            "calories": 500,
            "protein_g": 30,
            "ingredients": ["ingredient1", "ingredient2"]
        }
    ],
    "tips": ["Nutrition tip"]
}`
}

// ParsePlanJSON extracts a JSON object from an LLM response, tolerating
// markdown code fences. On any parse failure it returns the fallback.
func ParsePlanJSON(response string, fallback map[string]interface{}) map[string]interface{} {
	clean := strings.TrimSpace(response)
	if strings.HasPrefix(clean, "```") {
		parts := strings.Split(clean, "```")
		if len(parts) < 2 {
			return fallback
		}
		clean = parts[1]
		clean = strings.TrimPrefix(clean, "json")
		clean = strings.TrimSpace(clean)
	}

	var plan map[string]interface{}
	if err := json.Unmarshal([]byte(clean), &plan); err != nil {
		return fallback
	}
	return plan
}

func head(docs []string, n int) []string {
	if len(docs) > n {
		return docs[:n]
	}
	return docs
}
