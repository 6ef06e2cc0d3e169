package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie provenance values.
const (
	ProviderLocal    = "local"
	ProviderExternal = "external"
)

// Movie is a catalog entry. A movie either originates locally (no
// ExternalID) or mirrors a stock-video provider item (unique ExternalID).
type Movie struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	CoverImage  string             `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	VideoURL    string             `bson:"video_url,omitempty" json:"video_url,omitempty"`
	ExternalID  string             `bson:"external_id,omitempty" json:"external_id,omitempty"`
	Duration    int                `bson:"duration,omitempty" json:"duration,omitempty"`
	Provider    string             `bson:"provider" json:"provider"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	CoverImage  *string `json:"cover_image,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
	Duration    *int    `json:"duration,omitempty" binding:"omitempty,gte=0"`
}
