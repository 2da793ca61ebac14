package auth

import (
	"context"
	"sync"

	"health-tracker/db"
	"health-tracker/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
	err   error
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: map[string]models.User{}}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.User{}, m.err
	}
	u, ok := m.users[email]
	if !ok {
		return models.User{}, errors.WithStack(db.ErrNotFound)
	}
	return u, nil
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return errors.WithStack(db.ErrConflict)
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = *user
	return nil
}

type memSessions struct {
	mu       sync.Mutex
	sessions []models.Session
	err      error
}

func (m *memSessions) Create(_ context.Context, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sessions = append(m.sessions, session)
	return nil
}
