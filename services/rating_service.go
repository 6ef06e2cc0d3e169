package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/data_access"
	"github.com/emanuelrivas243/streamia-server/models"
)

type RatingStore interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error)
	FindByOwnerAndMovie(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error)
	UpdateValue(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error)
	Delete(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error)
}

type RatingService struct {
	ratings RatingStore
}

func NewRatingService(ratings RatingStore) *RatingService {
	return &RatingService{ratings: ratings}
}

// Submit upserts: a second rating for the same movie updates the stored
// value in place instead of creating a new record.
func (s *RatingService) Submit(ctx context.Context, userID primitive.ObjectID, req *models.SubmitRatingRequest) (*models.Rating, error) {
	rating, err := s.ratings.Upsert(ctx, userID, req.MovieID, req.Value)
	if err != nil {
		if err == data_access.ErrDuplicateKey {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rating, nil
}

func (s *RatingService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error) {
	return s.ratings.FindByOwner(ctx, userID)
}

// Update changes an existing rating and fails with not-found when the user
// has not rated the movie yet.
func (s *RatingService) Update(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error) {
	rating, err := s.ratings.UpdateValue(ctx, userID, movieID, value)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, ErrNotFound
	}
	return rating, nil
}

func (s *RatingService) Delete(ctx context.Context, userID primitive.ObjectID, movieID string) error {
	deleted, err := s.ratings.Delete(ctx, userID, movieID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
