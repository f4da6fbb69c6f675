package session

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/descmd1/lms-backend/internal/models"
)

type MongoRepository struct {
	sessions *mongo.Collection
	messages *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		sessions: db.Collection("live_sessions"),
		messages: db.Collection("chat_messages"),
	}
}

func (r *MongoRepository) Create(ctx context.Context, session *models.LiveSession) error {
	_, err := r.sessions.InsertOne(ctx, session)
	return err
}

func (r *MongoRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.LiveSession, error) {
	var session models.LiveSession
	err := r.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *MongoRepository) GetByIDAndTutor(ctx context.Context, id, tutorID primitive.ObjectID) (*models.LiveSession, error) {
	var session models.LiveSession
	err := r.sessions.FindOne(ctx, bson.M{"_id": id, "tutor_id": tutorID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *MongoRepository) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.LiveSession, error) {
	return r.list(ctx, bson.M{"course_id": courseID})
}

func (r *MongoRepository) ListByTutor(ctx context.Context, tutorID primitive.ObjectID) ([]models.LiveSession, error) {
	return r.list(ctx, bson.M{"tutor_id": tutorID})
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M) ([]models.LiveSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date_time", Value: 1}})
	cursor, err := r.sessions.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.LiveSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) error {
	set := bson.M{"updated_at": time.Now()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.ScheduledDateTime != nil {
		set["scheduled_date_time"] = *fields.ScheduledDateTime
	}
	if fields.Duration != nil {
		set["duration"] = *fields.Duration
	}
	if fields.MaxParticipants != nil {
		set["max_participants"] = *fields.MaxParticipants
	}

	res, err := r.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.SessionStatus) error {
	res, err := r.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Complete(ctx context.Context, id primitive.ObjectID, recordingURL string) error {
	set := bson.M{"status": models.SessionCompleted, "updated_at": time.Now()}
	if recordingURL != "" {
		set["recording_url"] = recordingURL
	}

	res, err := r.sessions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.sessions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) RoomIDExists(ctx context.Context, roomID string) (bool, error) {
	count, err := r.sessions.CountDocuments(ctx, bson.M{"room_id": roomID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoRepository) AddParticipant(ctx context.Context, id, userID primitive.ObjectID, joinedAt time.Time) (bool, error) {
	// The filter only matches when the user has no active roster entry, so a
	// concurrent duplicate join cannot append twice.
	filter := bson.M{
		"_id": id,
		"participants": bson.M{
			"$not": bson.M{
				"$elemMatch": bson.M{
					"user_id": userID,
					"left_at": bson.M{"$exists": false},
				},
			},
		},
	}
	update := bson.M{
		"$push": bson.M{"participants": bson.M{"user_id": userID, "joined_at": joinedAt}},
		"$set":  bson.M{"updated_at": joinedAt},
	}

	res, err := r.sessions.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) MarkParticipantLeft(ctx context.Context, id, userID primitive.ObjectID, leftAt time.Time) (bool, error) {
	filter := bson.M{
		"_id": id,
		"participants": bson.M{
			"$elemMatch": bson.M{
				"user_id": userID,
				"left_at": bson.M{"$exists": false},
			},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"participants.$.left_at": leftAt,
			"updated_at":             leftAt,
		},
	}

	res, err := r.sessions.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoRepository) InsertMessage(ctx context.Context, msg *models.ChatMessage) error {
	res, err := r.messages.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return nil
}

func (r *MongoRepository) ListMessages(ctx context.Context, sessionID primitive.ObjectID) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.messages.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
