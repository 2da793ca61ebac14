package models

// DailySummary is what the dashboard shows for a single day.
type DailySummary struct {
	Date          string  `json:"date"`
	Calories      int     `json:"calories"`
	CalorieGoal   int     `json:"calorieGoal"`
	CalorieRatio  float64 `json:"calorieRatio"`
	WaterML       int     `json:"waterMl"`
	WaterGoalML   int     `json:"waterGoalMl"`
	WaterRatio    float64 `json:"waterRatio"`
	MealCount     int     `json:"mealCount"`
	WaterLogCount int     `json:"waterLogCount"`
}
