package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/models"
)

type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) error
	FindByMovie(ctx context.Context, movieID string) ([]models.Comment, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	UpdateText(ctx context.Context, id primitive.ObjectID, text string) (*models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type CommentService struct {
	comments CommentStore
}

func NewCommentService(comments CommentStore) *CommentService {
	return &CommentService{comments: comments}
}

func (s *CommentService) Create(ctx context.Context, userID primitive.ObjectID, req *models.CreateCommentRequest) (*models.Comment, error) {
	now := time.Now()
	comment := &models.Comment{
		UserID:    userID,
		MovieID:   req.MovieID,
		Text:      req.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByMovie is public; reading comments needs no session.
func (s *CommentService) ListByMovie(ctx context.Context, movieID string) ([]models.Comment, error) {
	return s.comments.FindByMovie(ctx, movieID)
}

func (s *CommentService) UpdateText(ctx context.Context, userID, id primitive.ObjectID, text string) (*models.Comment, error) {
	comment, err := s.ownedComment(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.comments.UpdateText(ctx, comment.ID, text)
}

func (s *CommentService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	comment, err := s.ownedComment(ctx, userID, id)
	if err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, comment.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, userID, id primitive.ObjectID) (*models.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	return comment, nil
}
