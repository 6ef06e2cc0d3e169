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

type ratingKey struct {
	userID  primitive.ObjectID
	movieID string
}

type fakeRatingStore struct {
	ratings map[ratingKey]*models.Rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{ratings: make(map[ratingKey]*models.Rating)}
}

func (f *fakeRatingStore) Upsert(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error) {
	key := ratingKey{userID, movieID}
	now := time.Now()
	if existing, ok := f.ratings[key]; ok {
		existing.Value = value
		existing.UpdatedAt = now
	} else {
		f.ratings[key] = &models.Rating{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			MovieID:   movieID,
			Value:     value,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	copied := *f.ratings[key]
	return &copied, nil
}

func (f *fakeRatingStore) FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error) {
	result := []models.Rating{}
	for key, r := range f.ratings {
		if key.userID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRatingStore) FindByOwnerAndMovie(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error) {
	r, ok := f.ratings[ratingKey{userID, movieID}]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRatingStore) UpdateValue(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error) {
	r, ok := f.ratings[ratingKey{userID, movieID}]
	if !ok {
		return nil, nil
	}
	r.Value = value
	r.UpdatedAt = time.Now()
	copied := *r
	return &copied, nil
}

func (f *fakeRatingStore) Delete(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	key := ratingKey{userID, movieID}
	if _, ok := f.ratings[key]; !ok {
		return false, nil
	}
	delete(f.ratings, key)
	return true, nil
}

func TestRatingSubmit_UpsertsInPlace(t *testing.T) {
	store := newFakeRatingStore()
	svc := NewRatingService(store)
	owner := primitive.NewObjectID()

	first, err := svc.Submit(context.Background(), owner, &models.SubmitRatingRequest{MovieID: "205", Value: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Value)

	second, err := svc.Submit(context.Background(), owner, &models.SubmitRatingRequest{MovieID: "205", Value: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Value)

	// One stored record, holding the latest value.
	ratings, err := svc.List(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Value)
	assert.Equal(t, first.ID, second.ID)
}

func TestRatingUpdate_MissingRatingIsNotFound(t *testing.T) {
	svc := NewRatingService(newFakeRatingStore())

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), "205", 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingDelete(t *testing.T) {
	store := newFakeRatingStore()
	svc := NewRatingService(store)
	owner := primitive.NewObjectID()

	_, err := svc.Submit(context.Background(), owner, &models.SubmitRatingRequest{MovieID: "205", Value: 4})
	require.NoError(t, err)

	// Ratings are keyed by owner: another account deleting the same movie id
	// hits nothing.
	err = svc.Delete(context.Background(), primitive.NewObjectID(), "205")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), owner, "205"))

	err = svc.Delete(context.Background(), owner, "205")
	assert.ErrorIs(t, err, ErrNotFound)
}
