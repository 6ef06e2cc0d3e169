package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is unique per (user, movie); resubmission updates the value in place.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	MovieID   string             `bson:"movie_id" json:"movie_id"`
	Value     int                `bson:"value" json:"value"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type SubmitRatingRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
	Value   int    `json:"value" binding:"required,min=1,max=5"`
}

type UpdateRatingRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}
