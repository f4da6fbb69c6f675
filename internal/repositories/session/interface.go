package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/descmd1/lms-backend/internal/models"
)

// ErrNotFound is returned when no session matches the query.
var ErrNotFound = errors.New("session not found")

// UpdateFields holds the optional fields of a partial session update. Nil
// fields are left untouched.
type UpdateFields struct {
	Title             *string
	Description       *string
	ScheduledDateTime *time.Time
	Duration          *int
	MaxParticipants   *int
}

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/descmd1/lms-backend/internal/repositories/session Repository

// Repository persists live sessions and their chat messages.
type Repository interface {
	Create(ctx context.Context, session *models.LiveSession) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.LiveSession, error)
	// GetByIDAndTutor returns ErrNotFound both when the session is absent and
	// when it is owned by a different tutor, so callers cannot distinguish
	// the two cases.
	GetByIDAndTutor(ctx context.Context, id, tutorID primitive.ObjectID) (*models.LiveSession, error)
	ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.LiveSession, error)
	ListByTutor(ctx context.Context, tutorID primitive.ObjectID) ([]models.LiveSession, error)
	Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.SessionStatus) error
	Complete(ctx context.Context, id primitive.ObjectID, recordingURL string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	RoomIDExists(ctx context.Context, roomID string) (bool, error)
	// AddParticipant appends an active roster entry unless the user already
	// has one. It reports whether an entry was appended.
	AddParticipant(ctx context.Context, id, userID primitive.ObjectID, joinedAt time.Time) (bool, error)
	// MarkParticipantLeft stamps the user's active roster entry with leftAt.
	// It reports whether an active entry existed.
	MarkParticipantLeft(ctx context.Context, id, userID primitive.ObjectID, leftAt time.Time) (bool, error)
	InsertMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessages(ctx context.Context, sessionID primitive.ObjectID) ([]models.ChatMessage, error)
}
