package server

import (
	"log/slog"
	"net/http"
	"time"

	"health-tracker/auth"
	"health-tracker/config"
	"health-tracker/logging"
	"health-tracker/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloghttp "github.com/samber/slog-http"
)

type Deps struct {
	Config   *config.Config
	Entries  services.EntryStore
	Users    auth.Users
	Sessions auth.Sessions
	Logger   *slog.Logger
	Now      func() time.Time
}

func NewRouter(deps Deps) *gin.Engine {
	conf := deps.Config
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     conf.HTTP.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tokens := auth.NewTokens([]byte(conf.Auth.JWTSecret), conf.Auth.TokenTTL)

	r.POST("/register", auth.Register(deps.Users, deps.Sessions, tokens))
	r.POST("/login", auth.Login(deps.Users, deps.Sessions, tokens))

	if conf.Google.Enabled() {
		google := auth.NewGoogle(conf.Google, conf.HTTP.FrontendURL, deps.Users, deps.Sessions, tokens)
		r.GET("/auth/google/login", google.Login)
		r.GET("/auth/google/callback", google.Callback)
	}

	goals := services.Goals{
		Calories: conf.Dashboard.CalorieGoal,
		WaterML:  conf.Dashboard.WaterGoalML,
	}

	api := r.Group("/", tokens.Middleware())
	api.GET("/entries", services.ViewEntries(deps.Entries))
	api.POST("/entries/import", services.ImportEntries(deps.Entries))
	api.DELETE("/entries/:id", services.DeleteEntry(deps.Entries))
	api.GET("/entries/meals", services.ViewMeals(deps.Entries))
	api.POST("/entries/meals", services.AddMeal(deps.Entries))
	api.PUT("/entries/meals/:id", services.UpdateMeal(deps.Entries))
	api.GET("/entries/water", services.ViewWaterLogs(deps.Entries))
	api.POST("/entries/water", services.AddWaterLog(deps.Entries))
	api.PUT("/entries/water/:id", services.UpdateWaterLog(deps.Entries))
	api.GET("/summary", services.Summary(deps.Entries, goals, now))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// NewHandler wraps the router with access logging.
func NewHandler(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var handler http.Handler = NewRouter(deps)
	handler = sloghttp.Recovery(handler)
	handler = sloghttp.NewWithConfig(logger.With("component", logging.ComponentHTTP), sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
		Filters: []sloghttp.Filter{
			sloghttp.IgnorePath("/health"),
		},
	})(handler)

	return handler
}
