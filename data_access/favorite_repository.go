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

type FavoriteRepository struct {
	collection *mongo.Collection
}

func NewFavoriteRepository(db *MongoDB) *FavoriteRepository {
	return &FavoriteRepository{collection: db.Collection("favorites")}
}

func (r *FavoriteRepository) Insert(ctx context.Context, favorite *models.Favorite) error {
	res, err := r.collection.InsertOne(ctx, favorite)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		favorite.ID = oid
	}
	return nil
}

func (r *FavoriteRepository) FindByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := []models.Favorite{}
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *FavoriteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&favorite)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) FindByOwnerAndMovie(ctx context.Context, userID primitive.ObjectID, movieID string) (*models.Favorite, error) {
	var favorite models.Favorite
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "movie_id": movieID}).Decode(&favorite)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *FavoriteRepository) UpdateNote(ctx context.Context, id primitive.ObjectID, note string) (*models.Favorite, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"note": note, "updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *FavoriteRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
