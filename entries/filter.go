package entries

import (
	"health-tracker/models"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// IsMeal reports whether value decodes as a meal entry.
func IsMeal(value any) bool {
	e, ok := Decode(value)
	return ok && e.Type() == models.EntryTypeMeal
}

// IsWaterLog reports whether value decodes as a water log entry.
func IsWaterLog(value any) bool {
	e, ok := Decode(value)
	return ok && e.Type() == models.EntryTypeWater
}

// FilterMeals returns the meals found in values, in input order. The input
// slice is not modified. The result is never nil.
func FilterMeals(values []any) []models.Meal {
	return collect[models.Meal](values)
}

// FilterWaterLogs returns the water logs found in values, in input order.
func FilterWaterLogs(values []any) []models.WaterLog {
	return collect[models.WaterLog](values)
}

// Partition splits values into meals and water logs in a single pass.
// Elements matching neither variant are dropped.
func Partition(values []any) ([]models.Meal, []models.WaterLog) {
	meals := make([]models.Meal, 0)
	waterLogs := make([]models.WaterLog, 0)
	for _, v := range values {
		e, ok := Decode(v)
		if !ok {
			continue
		}
		switch t := e.(type) {
		case models.Meal:
			meals = append(meals, t)
		case models.WaterLog:
			waterLogs = append(waterLogs, t)
		}
	}
	return meals, waterLogs
}

// Classify decodes every matching element of values, keeping input order
// across both variants.
func Classify(values []any) []models.Entry {
	out := make([]models.Entry, 0, len(values))
	for _, v := range values {
		if e, ok := Decode(v); ok {
			out = append(out, e)
		}
	}
	return out
}

// DecodeJSON parses a JSON array of arbitrary values. Only the payload itself
// has to be well formed; the shape of each element is left to Decode.
func DecodeJSON(data []byte) ([]any, error) {
	var values []any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "could not decode entries payload")
	}
	if values == nil {
		values = []any{}
	}
	return values, nil
}

func collect[T models.Entry](values []any) []T {
	out := make([]T, 0)
	for _, v := range values {
		e, ok := Decode(v)
		if !ok {
			continue
		}
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
