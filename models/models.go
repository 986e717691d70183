package models

// UserProfile is the personal form submitted for plan generation. Every field
// is free-form text; the JSON keys match the shape persisted by earlier
// clients so stored profiles keep loading.
type UserProfile struct {
	Name              string `json:"name"`
	Age               string `json:"age"`
	Gender            string `json:"gender"`
	Height            string `json:"height"`
	Weight            string `json:"weight"`
	FitnessGoal       string `json:"fitnessGoal"`
	FitnessLevel      string `json:"fitnessLevel"`
	WorkoutLocation   string `json:"workoutLocation"`
	DietaryPreference string `json:"dietaryPreference"`
	MedicalHistory    string `json:"medicalHistory"`
}

// DefaultProfile is returned when no profile has been stored yet.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:              "Jane Doe",
		Age:               "30",
		Gender:            "Female",
		Height:            "165",
		Weight:            "70",
		FitnessGoal:       "Weight Loss",
		FitnessLevel:      "Beginner",
		WorkoutLocation:   "Home (Basic Equipment)",
		DietaryPreference: "Vegetarian",
		MedicalHistory:    "None",
	}
}

// ProfileOptions lists the suggested values for the select-style fields.
// They are advisory only; any string is accepted.
type ProfileOptions struct {
	Gender            []string `json:"gender"`
	FitnessGoal       []string `json:"fitnessGoal"`
	FitnessLevel      []string `json:"fitnessLevel"`
	WorkoutLocation   []string `json:"workoutLocation"`
	DietaryPreference []string `json:"dietaryPreference"`
}

func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		Gender:            []string{"Male", "Female", "Other"},
		FitnessGoal:       []string{"Weight Loss", "Muscle Gain", "General Fitness", "Improve Endurance"},
		FitnessLevel:      []string{"Beginner", "Intermediate", "Advanced"},
		WorkoutLocation:   []string{"Home (No Equipment)", "Home (Basic Equipment)", "Gym", "Outdoor"},
		DietaryPreference: []string{"Non-Vegetarian", "Vegetarian", "Vegan", "Keto", "Paleo"},
	}
}
