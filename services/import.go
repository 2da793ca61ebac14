package services

import (
	"net/http"

	"health-tracker/db"
	"health-tracker/entries"
	"health-tracker/logging"
	"health-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const maxImportBytes = 1 << 20

type ImportResult struct {
	Received  int `json:"received"`
	Meals     int `json:"meals"`
	WaterLogs int `json:"waterLogs"`
	Dropped   int `json:"dropped"`
}

// ImportEntries accepts a JSON array of records of any shape, for example an
// export from another device. Meals and water logs that pass the same checks
// as AddMeal and AddWaterLog are stored under the caller's account with fresh
// ids, in input order; everything else is counted as dropped.
func ImportEntries(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
		data, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Payload too large"})
			return
		}

		values, err := entries.DecodeJSON(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Expected a JSON array of entries"})
			return
		}

		list := make([]models.Entry, 0, len(values))
		var result ImportResult
		for _, v := range values {
			entry, ok := importable(v, userID)
			if !ok {
				continue
			}
			switch entry.(type) {
			case models.Meal:
				result.Meals++
			case models.WaterLog:
				result.WaterLogs++
			}
			list = append(list, entry)
		}

		if err := store.InsertMany(c.Request.Context(), list); err != nil {
			logger().ErrorContext(c.Request.Context(), "could not import entries", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import entries"})
			return
		}

		result.Received = len(values)
		result.Dropped = result.Received - result.Meals - result.WaterLogs
		logDropped(c, result.Received, result.Meals+result.WaterLogs)

		c.JSON(http.StatusOK, result)
	}
}

// importable decodes v and applies the limits enforced on single entries.
// The returned entry is owned by userID and carries a new id.
func importable(v any, userID string) (models.Entry, bool) {
	entry, ok := entries.DecodeStrict(v)
	if !ok {
		return nil, false
	}

	switch e := entry.(type) {
	case models.Meal:
		req := mealRequest{Name: e.Name, Calories: e.Calories, Date: e.Date}
		if binding.Validator.ValidateStruct(req) != nil {
			return nil, false
		}
		return req.meal(db.NewEntryID(), userID), true
	case models.WaterLog:
		req := waterRequest{AmountML: e.AmountML, Date: e.Date}
		if binding.Validator.ValidateStruct(req) != nil {
			return nil, false
		}
		return req.waterLog(db.NewEntryID(), userID), true
	}
	return nil, false
}
