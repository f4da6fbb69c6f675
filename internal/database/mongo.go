package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongoDB opens a client and verifies the connection with a ping.
func ConnectMongoDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return client, nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// index on live_sessions.room_id backs the room identifier uniqueness
// guarantee; the rest are query accelerators.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("live_sessions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "scheduled_date_time", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "tutor_id", Value: 1}, {Key: "scheduled_date_time", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("enrollments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("chat_messages").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}
