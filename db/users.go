package db

import (
	"context"

	"health-tracker/models"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(coll *mongo.Collection) *UserStore {
	return &UserStore{coll: coll}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, errors.WithStack(ErrNotFound)
	}
	if err != nil {
		return user, errors.Wrap(err, "could not find user")
	}
	return user, nil
}

// Create inserts user and sets its ID.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.WithStack(ErrConflict)
		}
		return errors.Wrap(err, "could not insert user")
	}
	return nil
}

type SessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(coll *mongo.Collection) *SessionStore {
	return &SessionStore{coll: coll}
}

func (s *SessionStore) Create(ctx context.Context, session models.Session) error {
	if _, err := s.coll.InsertOne(ctx, session); err != nil {
		return errors.Wrap(err, "could not insert session")
	}
	return nil
}
