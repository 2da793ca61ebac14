package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"health-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(users Users, sessions Sessions, tokens *Tokens) *gin.Engine {
	r := gin.New()
	r.POST("/register", Register(users, sessions, tokens))
	r.POST("/login", Login(users, sessions, tokens))
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestRegister(t *testing.T) {
	users := newMemUsers()
	sessions := &memSessions{}
	tokens := NewTokens(testSecret, time.Hour)
	r := newAuthRouter(users, sessions, tokens)

	w := post(r, "/register", `{"email":"ada@example.com","password":"correct horse","name":"Ada"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	userID, err := tokens.Validate(tokenFrom(t, w))
	require.NoError(t, err)

	stored := users.users["ada@example.com"]
	assert.Equal(t, stored.ID.Hex(), userID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct horse")))
	require.Len(t, sessions.sessions, 1)
	assert.Equal(t, ProviderPassword, sessions.sessions[0].Provider)

	w = post(r, "/register", `{"email":"ada@example.com","password":"another one"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterInvalidInput(t *testing.T) {
	r := newAuthRouter(newMemUsers(), &memSessions{}, NewTokens(testSecret, time.Hour))

	for _, body := range []string{
		`{"email":"ada@example.com"}`,
		`{"email":"not-an-email","password":"correct horse"}`,
		`{"email":"ada@example.com","password":"short"}`,
		`not json`,
	} {
		w := post(r, "/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestRegisterStorageFailure(t *testing.T) {
	users := newMemUsers()
	users.err = errors.New("connection reset")
	r := newAuthRouter(users, &memSessions{}, NewTokens(testSecret, time.Hour))

	w := post(r, "/register", `{"email":"ada@example.com","password":"correct horse"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := newMemUsers(
		models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Password: string(hash)},
		models.User{ID: primitive.NewObjectID(), Email: "grace@example.com", GoogleID: "g-1"},
	)
	sessions := &memSessions{err: errors.New("sessions down")}
	r := newAuthRouter(users, sessions, NewTokens(testSecret, time.Hour))

	w := post(r, "/login", `{"email":"ada@example.com","password":"correct horse"}`)
	require.Equal(t, http.StatusOK, w.Code, "a failed session write does not block login")
	tokenFrom(t, w)

	w = post(r, "/login", `{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/login", `{"email":"nobody@example.com","password":"correct horse"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/login", `{"email":"grace@example.com","password":"anything"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, "/login", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
