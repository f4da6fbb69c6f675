package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionLive      SessionStatus = "live"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Participant is one join record on a session roster. A missing LeftAt means
// the participant is still in the room.
type Participant struct {
	UserID   primitive.ObjectID `json:"user_id" bson:"user_id"`
	JoinedAt time.Time          `json:"joined_at" bson:"joined_at"`
	LeftAt   *time.Time         `json:"left_at,omitempty" bson:"left_at,omitempty"`
}

type LiveSession struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID          primitive.ObjectID `json:"course_id" bson:"course_id"`
	TutorID           primitive.ObjectID `json:"tutor_id" bson:"tutor_id"`
	Title             string             `json:"title" bson:"title"`
	Description       string             `json:"description" bson:"description"`
	ScheduledDateTime time.Time          `json:"scheduled_date_time" bson:"scheduled_date_time"`
	Duration          int                `json:"duration" bson:"duration"` // minutes
	MaxParticipants   int                `json:"max_participants" bson:"max_participants"`
	RoomID            string             `json:"room_id" bson:"room_id"`
	Status            SessionStatus      `json:"status" bson:"status"`
	Participants      []Participant      `json:"participants" bson:"participants"`
	RecordingURL      string             `json:"recording_url,omitempty" bson:"recording_url,omitempty"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// ActiveParticipantCount counts roster entries that have not left.
func (s *LiveSession) ActiveParticipantCount() int {
	count := 0
	for _, p := range s.Participants {
		if p.LeftAt == nil {
			count++
		}
	}
	return count
}

// HasActiveParticipant reports whether the user currently holds an active
// roster entry.
func (s *LiveSession) HasActiveParticipant(userID primitive.ObjectID) bool {
	for _, p := range s.Participants {
		if p.UserID == userID && p.LeftAt == nil {
			return true
		}
	}
	return false
}
