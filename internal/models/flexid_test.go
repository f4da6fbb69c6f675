package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFlexID_DecodesObjectID(t *testing.T) {
	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.M{
		"user_id":   userID,
		"course_id": courseID,
	})
	require.NoError(t, err)

	var e Enrollment
	require.NoError(t, bson.Unmarshal(raw, &e))

	assert.Equal(t, userID.Hex(), e.UserID.Hex())
	assert.Equal(t, courseID.Hex(), e.CourseID.Hex())
}

func TestFlexID_DecodesHexString(t *testing.T) {
	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.M{
		"user_id":   userID.Hex(),
		"course_id": courseID.Hex(),
	})
	require.NoError(t, err)

	var e Enrollment
	require.NoError(t, bson.Unmarshal(raw, &e))

	assert.Equal(t, userID.Hex(), e.UserID.Hex())
	assert.Equal(t, courseID.Hex(), e.CourseID.Hex())
}

func TestFlexID_MarshalsAsObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	raw, err := bson.Marshal(bson.M{"user_id": FlexID(id.Hex())})
	require.NoError(t, err)

	var doc struct {
		UserID primitive.ObjectID `bson:"user_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &doc))
	assert.Equal(t, id, doc.UserID)
}

func TestFlexID_ObjectIDRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()
	f := FlexID(id.Hex())

	got, err := f.ObjectID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = FlexID("not-hex").ObjectID()
	assert.Error(t, err)
}
