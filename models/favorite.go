package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is unique per (user, movie); a duplicate is rejected, not merged.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	MovieID   string             `bson:"movie_id" json:"movie_id"`
	Title     string             `bson:"title" json:"title"`
	Poster    string             `bson:"poster,omitempty" json:"poster,omitempty"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateFavoriteRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Poster  string `json:"poster"`
	Note    string `json:"note" binding:"omitempty,max=300"`
}

type UpdateFavoriteRequest struct {
	Note string `json:"note" binding:"required,max=300"`
}
