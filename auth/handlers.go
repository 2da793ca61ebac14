package auth

import (
	"context"
	"log/slog"
	"net/http"

	"health-tracker/db"
	"health-tracker/logging"
	"health-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type Users interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type Sessions interface {
	Create(ctx context.Context, session models.Session) error
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

func Register(users Users, sessions Sessions, tokens *Tokens) gin.HandlerFunc {
	logger := slog.With("component", logging.ComponentAuth)

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil || user.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		_, err := users.FindByEmail(ctx, user.Email)
		switch {
		case err == nil:
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		case !errors.Is(err, db.ErrNotFound):
			logger.ErrorContext(ctx, "could not look up user", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = string(hashedPassword)
		user.GoogleID = ""

		if err := users.Create(ctx, &user); err != nil {
			if errors.Is(err, db.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
				return
			}
			logger.ErrorContext(ctx, "could not create user", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
			return
		}

		token, err := issue(ctx, sessions, tokens, user, ProviderPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

func Login(users Users, sessions Sessions, tokens *Tokens) gin.HandlerFunc {
	logger := slog.With("component", logging.ComponentAuth)

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var creds struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := users.FindByEmail(ctx, creds.Email)
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err != nil {
			logger.ErrorContext(ctx, "could not look up user", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
			return
		}

		if user.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Use Google login for this account"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := issue(ctx, sessions, tokens, user, ProviderPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// issue signs a token for user and records the session. A failed session
// write is logged but does not fail the login.
func issue(ctx context.Context, sessions Sessions, tokens *Tokens, user models.User, provider string) (string, error) {
	logger := slog.With("component", logging.ComponentAuth)

	token, expiresAt, err := tokens.Generate(user.ID.Hex())
	if err != nil {
		logger.ErrorContext(ctx, "could not sign token", logging.Error(err))
		return "", err
	}

	session := models.Session{
		UserID:    user.ID,
		Token:     token,
		Provider:  provider,
		ExpiresAt: expiresAt.Unix(),
	}
	if err := sessions.Create(ctx, session); err != nil {
		logger.WarnContext(ctx, "could not record session", logging.Error(err))
	}

	return token, nil
}
