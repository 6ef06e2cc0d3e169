package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/data_access"
	"github.com/emanuelrivas243/streamia-server/models"
)

type FavoriteStore interface {
	Insert(ctx context.Context, favorite *models.Favorite) error
	FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error)
	FindByOwnerAndMovie(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Favorite, error)
	UpdateNote(ctx context.Context, id primitive.ObjectID, note string) (*models.Favorite, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type FavoriteService struct {
	favorites FavoriteStore
}

func NewFavoriteService(favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Create rejects a duplicate (user, movie) pair with a conflict; favorites
// are never merged.
func (s *FavoriteService) Create(ctx context.Context, userID primitive.ObjectID, req *models.CreateFavoriteRequest) (*models.Favorite, error) {
	existing, err := s.favorites.FindByOwnerAndMovie(ctx, userID, req.MovieID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	now := time.Now()
	favorite := &models.Favorite{
		UserID:    userID,
		MovieID:   req.MovieID,
		Title:     req.Title,
		Poster:    req.Poster,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.favorites.Insert(ctx, favorite); err != nil {
		// A concurrent identical submission can lose the race on the
		// unique index; that is still a conflict, not corruption.
		if err == data_access.ErrDuplicateKey {
			return nil, ErrConflict
		}
		return nil, err
	}
	return favorite, nil
}

func (s *FavoriteService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	return s.favorites.FindByOwner(ctx, userID)
}

func (s *FavoriteService) UpdateNote(ctx context.Context, userID, id primitive.ObjectID, note string) (*models.Favorite, error) {
	favorite, err := s.ownedFavorite(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.favorites.UpdateNote(ctx, favorite.ID, note)
}

func (s *FavoriteService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	favorite, err := s.ownedFavorite(ctx, userID, id)
	if err != nil {
		return err
	}

	deleted, err := s.favorites.Delete(ctx, favorite.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *FavoriteService) ownedFavorite(ctx context.Context, userID, id primitive.ObjectID) (*models.Favorite, error) {
	favorite, err := s.favorites.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, ErrNotFound
	}
	if favorite.UserID != userID {
		return nil, ErrForbidden
	}
	return favorite, nil
}
