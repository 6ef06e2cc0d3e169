package data_access

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emanuelrivas243/streamia-server/models"
)

type RatingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *MongoDB) *RatingRepository {
	return &RatingRepository{collection: db.Collection("ratings")}
}

// Upsert writes the rating value for a (user, movie) pair in a single atomic
// operation: a second submission updates the stored value in place.
func (r *RatingRepository) Upsert(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error) {
	now := time.Now()
	filter := bson.M{"user_id": userID, "movie_id": movieID}
	update := bson.M{
		"$set":         bson.M{"value": value, "updated_at": now},
		"$setOnInsert": bson.M{"user_id": userID, "movie_id": movieID, "created_at": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Two identical concurrent submissions raced on the unique
			// index; report the conflict rather than retrying silently.
			return nil, ErrDuplicateKey
		}
		return nil, err
	}
	return r.FindByOwnerAndMovie(ctx, userID, movieID)
}

func (r *RatingRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := []models.Rating{}
	if err = cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) FindByOwnerAndMovie(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "movie_id": movieID}).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// UpdateValue changes an existing rating; it does not create one.
func (r *RatingRepository) UpdateValue(ctx context.Context, userID primitive.ObjectID, movieID string, value int) (*models.Rating, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "movie_id": movieID},
		bson.M{"$set": bson.M{"value": value, "updated_at": time.Now()}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByOwnerAndMovie(ctx, userID, movieID)
}

func (r *RatingRepository) Delete(ctx context.Context, userID primitive.ObjectID, movieID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "movie_id": movieID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
