package data_access

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/emanuelrivas243/streamia-server/models"
)

type MovieRepository struct {
	db         *MongoDB
	collection *mongo.Collection
}

func NewMovieRepository(db *MongoDB) *MovieRepository {
	return &MovieRepository{
		db:         db,
		collection: db.Collection("movies"),
	}
}

func (r *MovieRepository) Reachable(ctx context.Context) bool {
	return r.db.Reachable(ctx)
}

func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// FindRecent returns up to limit movies, most recently created first.
func (r *MovieRepository) FindRecent(ctx context.Context, limit int) ([]models.Movie, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err = cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// FindFiltered pushes case-insensitive substring filters into the query.
func (r *MovieRepository) FindFiltered(ctx context.Context, category, search string, limit int) ([]models.Movie, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = bson.M{"$regex": regexp.QuoteMeta(category), "$options": "i"}
	}
	if search != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	movies := []models.Movie{}
	if err = cursor.All(ctx, &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Movie, error) {
	var movie models.Movie
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&movie)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) FindByExternalID(ctx context.Context, externalID string) (*models.Movie, error) {
	var movie models.Movie
	err := r.collection.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&movie)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieRepository) Insert(ctx context.Context, movie *models.Movie) error {
	res, err := r.collection.InsertOne(ctx, movie)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		movie.ID = oid
	}
	return nil
}

func (r *MovieRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateMovieRequest) (*models.Movie, error) {
	set := bson.M{"updated_at": time.Now()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.CoverImage != nil {
		set["cover_image"] = *req.CoverImage
	}
	if req.VideoURL != nil {
		set["video_url"] = *req.VideoURL
	}
	if req.Duration != nil {
		set["duration"] = *req.Duration
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *MovieRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
