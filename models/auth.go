package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KasirPin - единственный документ в коллекции auth с bcrypt-хэшем PIN-кода кассы.
type KasirPin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	PinHash   string             `bson:"pin_hash" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type LoginInput struct {
	Pin string `json:"pin" binding:"required"`
}

type GantiPinInput struct {
	OldPin string `json:"old_pin" binding:"required"`
	NewPin string `json:"new_pin" binding:"required"`
}
