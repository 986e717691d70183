package models

// Plan is the structured 7-day programme returned by the plan generator.
// It is stored and replaced as a whole; nothing updates it in place.
type Plan struct {
	WorkoutPlan WorkoutPlan `json:"workout_plan"`
	DietPlan    DietPlan    `json:"diet_plan"`
	AITips      AITips      `json:"ai_tips"`
}

type WorkoutPlan struct {
	DailyRoutine []WorkoutDay `json:"daily_routine"`
}

// WorkoutDay is one day of training.
type WorkoutDay struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Exercises []Exercise `json:"exercises"`
}

// Exercise keeps sets/reps/rest as text since the model returns values such
// as "8-12" or "60s".
type Exercise struct {
	Name string `json:"name"`
	Sets string `json:"sets"`
	Reps string `json:"reps"`
	Rest string `json:"rest"`
}

type DietPlan struct {
	MealPlan []MealDay `json:"meal_plan"`
}

type MealDay struct {
	Day   string `json:"day"`
	Meals Meals  `json:"meals"`
}

// Meals holds the four meal slots. A nil slot was absent in the response.
type Meals struct {
	Breakfast *Meal `json:"breakfast,omitempty"`
	Lunch     *Meal `json:"lunch,omitempty"`
	Dinner    *Meal `json:"dinner,omitempty"`
	Snacks    *Meal `json:"snacks,omitempty"`
}

type Meal struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
}

// MealEntry pairs a meal with the slot it was served in.
type MealEntry struct {
	Type string
	Meal Meal
}

// Entries returns the present meals in breakfast, lunch, dinner, snacks order.
func (m Meals) Entries() []MealEntry {
	slots := []struct {
		name string
		meal *Meal
	}{
		{"breakfast", m.Breakfast},
		{"lunch", m.Lunch},
		{"dinner", m.Dinner},
		{"snacks", m.Snacks},
	}
	out := make([]MealEntry, 0, len(slots))
	for _, s := range slots {
		if s.meal == nil {
			continue
		}
		out = append(out, MealEntry{Type: s.name, Meal: *s.meal})
	}
	return out
}

type AITips struct {
	LifestyleTips []string `json:"lifestyle_tips"`
	Motivation    string   `json:"motivation"`
}
