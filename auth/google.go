package auth

import (
	"crypto/rand"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"health-tracker/config"
	"health-tracker/db"
	"health-tracker/logging"
	"health-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie       = "oauthstate"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	stateCookieMaxAge = 600
	userInfoBodyLimit = 1 << 20
)

type Google struct {
	oauth       *oauth2.Config
	userInfoURL string
	frontendURL string
	users       Users
	sessions    Sessions
	tokens      *Tokens
	logger      *slog.Logger
}

func NewGoogle(conf config.Google, frontendURL string, users Users, sessions Sessions, tokens *Tokens) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     conf.ClientID,
			ClientSecret: conf.ClientSecret,
			RedirectURL:  conf.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
				"openid",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
		frontendURL: frontendURL,
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		logger:      slog.With("component", logging.ComponentAuth),
	}
}

type googleUser struct {
	Sub       string `json:"sub"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
}

func (g *Google) Login(c *gin.Context) {
	state, err := newState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", c.Request.TLS != nil, true)

	u := g.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent select_account"))
	c.Redirect(http.StatusTemporaryRedirect, u)
}

func (g *Google) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	state := c.Query("state")
	cookie, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != cookie {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing code parameter"})
		return
	}

	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		g.logger.ErrorContext(ctx, "could not exchange code", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange token"})
		return
	}

	info, err := g.fetchUser(c, token)
	if err != nil {
		g.logger.ErrorContext(ctx, "could not fetch user info", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user info"})
		return
	}

	user, err := g.users.FindByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, db.ErrNotFound):
		user = models.User{
			GoogleID: info.Sub,
			Email:    info.Email,
			Name:     info.Name,
		}
		if user.Name == "" {
			user.Name = info.GivenName
		}
		if err := g.users.Create(ctx, &user); err != nil {
			g.logger.ErrorContext(ctx, "could not create user", logging.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}
	case err != nil:
		g.logger.ErrorContext(ctx, "could not look up user", logging.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	case user.GoogleID == "":
		c.JSON(http.StatusConflict, gin.H{"error": "Email registered with password. Use email login."})
		return
	}

	tokenString, err := issue(ctx, g.sessions, g.tokens, user, ProviderGoogle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	redirect, err := url.Parse(g.frontendURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid frontend URL"})
		return
	}
	query := redirect.Query()
	query.Set("token", tokenString)
	redirect.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, redirect.String())
}

func (g *Google) fetchUser(c *gin.Context, token *oauth2.Token) (googleUser, error) {
	var info googleUser

	resp, err := g.oauth.Client(c.Request.Context(), token).Get(g.userInfoURL)
	if err != nil {
		return info, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return info, errors.Errorf("unexpected user info status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, userInfoBodyLimit))
	if err != nil {
		return info, errors.WithStack(err)
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return info, errors.WithStack(err)
	}

	if info.Sub == "" {
		info.Sub = info.ID
	}
	if info.Sub == "" || info.Email == "" {
		return info, errors.New("user info is missing id or email")
	}
	return info, nil
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
