package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	HTTP      HTTP      `envPrefix:"HTTP_"`
	Mongo     Mongo     `envPrefix:"MONGO_"`
	Auth      Auth      `envPrefix:"AUTH_"`
	Google    Google    `envPrefix:"GOOGLE_"`
	Dashboard Dashboard `envPrefix:"DASHBOARD_"`
}

type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"FORMAT" envDefault:"text" validate:"oneof=text json"`
}

type HTTP struct {
	Address        string   `env:"ADDRESS,expand" envDefault:":8080" validate:"required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5174" validate:"dive,url"`
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5174/" validate:"url"`
}

type Mongo struct {
	URI            string        `env:"URI,expand" validate:"required,startswith=mongodb"`
	Database       string        `env:"DATABASE" envDefault:"health" validate:"required"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET" validate:"required,min=16"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h" validate:"gt=0"`
}

// Google login is disabled when ClientID is empty.
type Google struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET" validate:"required_with=ClientID"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/auth/google/callback" validate:"omitempty,url"`
}

func (g Google) Enabled() bool {
	return g.ClientID != ""
}

type Dashboard struct {
	CalorieGoal int `env:"CALORIE_GOAL" envDefault:"2000" validate:"gt=0"`
	WaterGoalML int `env:"WATER_GOAL_ML" envDefault:"2000" validate:"gt=0"`
}

var validate = validator.New()

// Load reads an optional .env file, then parses the HEALTH_ prefixed
// environment into a validated Config.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "could not load env file")
	} else if err != nil {
		slog.Debug("no env file found, relying on environment variables")
	}

	return Parse()
}

func Parse() (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: "HEALTH_",
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
