package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"health-tracker/auth"
	"health-tracker/db"
	"health-tracker/entries"
	"health-tracker/logging"
	"health-tracker/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type EntryStore interface {
	Insert(ctx context.Context, entry models.Entry) error
	InsertMany(ctx context.Context, list []models.Entry) error
	List(ctx context.Context, userID, date string) ([]any, error)
	Replace(ctx context.Context, entry models.Entry) (bool, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type mealRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Calories int    `json:"calories" binding:"gte=0,lte=20000"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (r mealRequest) meal(id, userID string) models.Meal {
	return models.Meal{
		EntryType: models.EntryTypeMeal,
		ID:        id,
		UserID:    userID,
		Date:      r.Date,
		Name:      r.Name,
		Calories:  r.Calories,
	}
}

type waterRequest struct {
	AmountML int    `json:"amountMl" binding:"required,gt=0,lte=10000"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
}

func (r waterRequest) waterLog(id, userID string) models.WaterLog {
	return models.WaterLog{
		EntryType: models.EntryTypeWater,
		ID:        id,
		UserID:    userID,
		Date:      r.Date,
		AmountML:  r.AmountML,
	}
}

func logger() *slog.Logger {
	return slog.Default().With("component", logging.ComponentEntries)
}

func AddMeal(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req mealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		meal := req.meal(db.NewEntryID(), userID)
		if err := store.Insert(c.Request.Context(), meal); err != nil {
			logger().ErrorContext(c.Request.Context(), "could not add meal", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal"})
			return
		}

		c.JSON(http.StatusCreated, meal)
	}
}

func AddWaterLog(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req waterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		waterLog := req.waterLog(db.NewEntryID(), userID)
		if err := store.Insert(c.Request.Context(), waterLog); err != nil {
			logger().ErrorContext(c.Request.Context(), "could not add water log", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add water log"})
			return
		}

		c.JSON(http.StatusCreated, waterLog)
	}
}

// ViewEntries returns meals and water logs together, in stored order.
func ViewEntries(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, ok := listDocuments(c, store)
		if !ok {
			return
		}

		list := entries.Classify(docs)
		logDropped(c, len(docs), len(list))
		c.JSON(http.StatusOK, list)
	}
}

func ViewMeals(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, ok := listDocuments(c, store)
		if !ok {
			return
		}
		logUnrecognized(c, docs)
		c.JSON(http.StatusOK, entries.FilterMeals(docs))
	}
}

func ViewWaterLogs(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, ok := listDocuments(c, store)
		if !ok {
			return
		}
		logUnrecognized(c, docs)
		c.JSON(http.StatusOK, entries.FilterWaterLogs(docs))
	}
}

func UpdateMeal(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req mealRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		replaceEntry(c, store, req.meal(c.Param("id"), userID))
	}
}

func UpdateWaterLog(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		var req waterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		replaceEntry(c, store, req.waterLog(c.Param("id"), userID))
	}
}

func DeleteEntry(store EntryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}

		id := c.Param("id")
		found, err := store.Delete(c.Request.Context(), userID, id)
		if err != nil {
			logger().ErrorContext(c.Request.Context(), "could not delete entry", slog.String("id", id), logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or not owned by user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
	}
}

func replaceEntry(c *gin.Context, store EntryStore, entry models.Entry) {
	found, err := store.Replace(c.Request.Context(), entry)
	if err != nil {
		logger().ErrorContext(c.Request.Context(), "could not update entry", slog.String("id", entry.EntryID()), logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found or not owned by user"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// queryDate returns the optional ?date= filter, rejecting malformed values.
func queryDate(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return "", true
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return "", false
	}
	return date, true
}

func listDocuments(c *gin.Context, store EntryStore) ([]any, bool) {
	date, ok := queryDate(c)
	if !ok {
		return nil, false
	}
	return fetchDocuments(c, store, date)
}

// fetchDocuments loads the caller's raw documents. They are not classified yet.
func fetchDocuments(c *gin.Context, store EntryStore, date string) ([]any, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return nil, false
	}

	docs, err := store.List(c.Request.Context(), userID, date)
	if err != nil {
		logger().ErrorContext(c.Request.Context(), "could not list entries", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
		return nil, false
	}
	return docs, true
}

func logDropped(c *gin.Context, received, kept int) {
	if dropped := received - kept; dropped > 0 {
		logger().DebugContext(c.Request.Context(), "skipped unrecognized entries",
			slog.Int("received", received),
			slog.Int("dropped", dropped),
		)
	}
}

// logUnrecognized counts documents that are neither meals nor water logs. The
// extra decode only happens when debug logging is on.
func logUnrecognized(c *gin.Context, docs []any) {
	if !logger().Enabled(c.Request.Context(), slog.LevelDebug) {
		return
	}
	logDropped(c, len(docs), len(entries.Classify(docs)))
}
