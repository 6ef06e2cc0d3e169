package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/emanuelrivas243/streamia-server/models"
)

type fakeCommentStore struct {
	comments map[primitive.ObjectID]*models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (f *fakeCommentStore) Insert(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	copied := *comment
	f.comments[comment.ID] = &copied
	return nil
}

func (f *fakeCommentStore) FindByMovie(ctx context.Context, movieID string) ([]models.Comment, error) {
	result := []models.Comment{}
	for _, c := range f.comments {
		if c.MovieID == movieID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (f *fakeCommentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCommentStore) UpdateText(ctx context.Context, id primitive.ObjectID, text string) (*models.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	c.Text = text
	c.UpdatedAt = time.Now()
	copied := *c
	return &copied, nil
}

func (f *fakeCommentStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.comments[id]; !ok {
		return false, nil
	}
	delete(f.comments, id)
	return true, nil
}

func TestComments_ManyPerMoviePerUser(t *testing.T) {
	svc := NewCommentService(newFakeCommentStore())
	owner := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), owner, &models.CreateCommentRequest{MovieID: "205", Text: "great"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), owner, &models.CreateCommentRequest{MovieID: "205", Text: "watched again, still great"})
	require.NoError(t, err)

	comments, err := svc.ListByMovie(context.Background(), "205")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestCommentOwnership(t *testing.T) {
	store := newFakeCommentStore()
	svc := NewCommentService(store)

	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()

	comment, err := svc.Create(context.Background(), ownerA, &models.CreateCommentRequest{MovieID: "205", Text: "original"})
	require.NoError(t, err)

	_, err = svc.UpdateText(context.Background(), ownerB, comment.ID, "defaced")
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(context.Background(), ownerB, comment.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	stored, err := store.FindByID(context.Background(), comment.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "original", stored.Text)

	updated, err := svc.UpdateText(context.Background(), ownerA, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	require.NoError(t, svc.Delete(context.Background(), ownerA, comment.ID))

	err = svc.Delete(context.Background(), ownerA, comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
