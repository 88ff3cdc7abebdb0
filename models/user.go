package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender is a self-reported profile field. It is informational only; it does
// not drive membership roles or permissions.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnspecified:
		return true
	}
	return false
}

// User is an account. Events reference users by id; a user is never embedded
// in an event document.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password_hash" json:"-"` // bcrypt hash, never serialized
	Gender    Gender             `bson:"gender" json:"gender"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
