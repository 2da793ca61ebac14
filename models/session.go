package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Session records an issued token so it can be audited or revoked later.
type Session struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Token     string             `bson:"token"`
	Provider  string             `bson:"provider"`
	ExpiresAt int64              `bson:"expires_at"`
}
