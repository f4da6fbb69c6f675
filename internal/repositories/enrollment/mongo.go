package enrollment

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
	return &MongoRepository{collection: db.Collection("enrollments")}
}

// idVariants returns the filter values that can represent the identifier in
// stored documents. Legacy writers stored raw hex strings, newer ones store
// ObjectIDs; a single $in clause covers both.
func idVariants(hex string) []interface{} {
	variants := []interface{}{hex}
	if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
		variants = append(variants, oid)
	}
	return variants
}

func (r *MongoRepository) Find(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
	filter := bson.M{
		"user_id":   bson.M{"$in": idVariants(userID)},
		"course_id": bson.M{"$in": idVariants(courseID)},
	}

	var enrollment models.Enrollment
	err := r.collection.FindOne(ctx, filter).Decode(&enrollment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *MongoRepository) ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error) {
	filter := bson.M{"course_id": bson.M{"$in": idVariants(courseID)}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var enrollments []models.Enrollment
	if err = cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *MongoRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	res, err := r.collection.InsertOne(ctx, enrollment)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		enrollment.ID = oid
	}
	return nil
}
