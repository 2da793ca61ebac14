package services

import (
	"net/http"
	"time"

	"health-tracker/entries"
	"health-tracker/models"

	"github.com/gin-gonic/gin"
)

type Goals struct {
	Calories int
	WaterML  int
}

// Summarize totals one day of entries against goals. Entries dated on other
// days are ignored.
func Summarize(date string, meals []models.Meal, waterLogs []models.WaterLog, goals Goals) models.DailySummary {
	summary := models.DailySummary{
		Date:        date,
		CalorieGoal: goals.Calories,
		WaterGoalML: goals.WaterML,
	}

	for _, m := range meals {
		if m.Date != date {
			continue
		}
		summary.Calories += m.Calories
		summary.MealCount++
	}
	for _, w := range waterLogs {
		if w.Date != date {
			continue
		}
		summary.WaterML += w.AmountML
		summary.WaterLogCount++
	}

	summary.CalorieRatio = ratio(summary.Calories, goals.Calories)
	summary.WaterRatio = ratio(summary.WaterML, goals.WaterML)
	return summary
}

func ratio(value, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(value) / float64(goal)
}

// Summary serves the dashboard totals for ?date=, today when absent.
func Summary(store EntryStore, goals Goals, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, ok := queryDate(c)
		if !ok {
			return
		}
		if date == "" {
			date = now().Format(dateLayout)
		}

		docs, ok := fetchDocuments(c, store, date)
		if !ok {
			return
		}

		meals, waterLogs := entries.Partition(docs)
		logDropped(c, len(docs), len(meals)+len(waterLogs))
		c.JSON(http.StatusOK, Summarize(date, meals, waterLogs, goals))
	}
}
