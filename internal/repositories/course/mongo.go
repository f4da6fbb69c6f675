package course

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/descmd1/lms-backend/internal/models"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("courses")}
}

func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByIDAndAuthor(ctx context.Context, id primitive.ObjectID, author string) (*models.Course, error) {
	return r.findOne(ctx, bson.M{"_id": id, "author": author})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Course, error) {
	var course models.Course
	err := r.collection.FindOne(ctx, filter).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}
