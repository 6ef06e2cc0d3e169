package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	MovieID   string             `bson:"movie_id" json:"movie_id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type CreateCommentRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
	Text    string `json:"text" binding:"required,max=500"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}
