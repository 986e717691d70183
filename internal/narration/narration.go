// Package narration turns plan sections into the text read aloud and the
// prompts used to illustrate exercises and meals.
package narration

import (
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/fitcoach/models"
)

// FullPlanID is the playback item id for whole-tab narration.
const FullPlanID = "fullPlan"

// Tab names a section of a displayed plan.
type Tab string

const (
	TabWorkout Tab = "workout"
	TabDiet    Tab = "diet"
	TabTips    Tab = "tips"
)

// ParseTab accepts the three tab names; anything else is an error.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabWorkout:
		return TabWorkout, nil
	case TabDiet:
		return TabDiet, nil
	case TabTips:
		return TabTips, nil
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// WorkoutDayText is read when a single workout day is played.
func WorkoutDayText(d models.WorkoutDay) string {
	parts := make([]string, 0, len(d.Exercises))
	for _, ex := range d.Exercises {
		parts = append(parts, fmt.Sprintf("%s: %s sets of %s", ex.Name, ex.Sets, ex.Reps))
	}
	return fmt.Sprintf("Workout for %s: %s. %s", d.Day, d.Focus, strings.Join(parts, ". "))
}

// DietDayText is read when a single diet day is played.
func DietDayText(d models.MealDay) string {
	entries := d.Meals.Entries()
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s: %s.", e.Type, e.Meal.Name))
	}
	return fmt.Sprintf("Diet for %s: %s", d.Day, strings.Join(parts, " "))
}

// FullPlanText summarises the whole tab for the "read plan" action.
func FullPlanText(p models.Plan, tab Tab) string {
	switch tab {
	case TabWorkout:
		days := make([]string, 0, len(p.WorkoutPlan.DailyRoutine))
		for _, d := range p.WorkoutPlan.DailyRoutine {
			names := make([]string, 0, len(d.Exercises))
			for _, ex := range d.Exercises {
				names = append(names, ex.Name)
			}
			days = append(days, fmt.Sprintf("%s, %s: %s", d.Day, d.Focus, strings.Join(names, ", ")))
		}
		return "Here is your workout plan. " + strings.Join(days, ". ")
	case TabDiet:
		days := make([]string, 0, len(p.DietPlan.MealPlan))
		for _, d := range p.DietPlan.MealPlan {
			meals := make([]string, 0, 4)
			for _, e := range d.Meals.Entries() {
				meals = append(meals, fmt.Sprintf("%s: %s", e.Type, e.Meal.Name))
			}
			days = append(days, fmt.Sprintf("%s: %s", d.Day, strings.Join(meals, ", ")))
		}
		return "Here is your diet plan. " + strings.Join(days, ". ")
	default:
		return fmt.Sprintf("Here are your AI tips. %s. And for motivation: %s",
			strings.Join(p.AITips.LifestyleTips, ". "), p.AITips.Motivation)
	}
}

// DayText finds day in the given tab and returns its narration along with the
// playback item id, which is the day name itself.
func DayText(p models.Plan, tab Tab, day string) (id, text string, ok bool) {
	switch tab {
	case TabWorkout:
		for _, d := range p.WorkoutPlan.DailyRoutine {
			if strings.EqualFold(d.Day, day) {
				return d.Day, WorkoutDayText(d), true
			}
		}
	case TabDiet:
		for _, d := range p.DietPlan.MealPlan {
			if strings.EqualFold(d.Day, day) {
				return d.Day, DietDayText(d), true
			}
		}
	}
	return "", "", false
}

func ExercisePhotoPrompt(name string) string {
	return "A clear, high-quality, realistic photo of a person performing a " + name
}

func MealPhotoPrompt(name string) string {
	return "A delicious, high-resolution, food-photography style photo of " + name
}
