package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID string             `bson:"google_id,omitempty" json:"-"`
	Email    string             `bson:"email" json:"email" binding:"required,email"`
	Password string             `bson:"password,omitempty" json:"password,omitempty" binding:"omitempty,min=8"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
}
