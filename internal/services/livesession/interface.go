package livesession

import (
	"context"
	"time"

	"github.com/descmd1/lms-backend/internal/models"
)

// Actor is the authenticated principal performing an operation, as resolved
// from the auth token.
type Actor struct {
	ID   string
	Name string
	Role models.UserRole
}

// CreateSessionInput holds the fields for scheduling a new live session.
type CreateSessionInput struct {
	Actor             Actor
	CourseID          string
	Title             string
	Description       string
	ScheduledDateTime time.Time
	// Duration defaults to 60 minutes when zero.
	Duration int
	// MaxParticipants defaults to 100 when zero.
	MaxParticipants int
}

// UpdateSessionInput is a partial update; nil fields are left unchanged.
type UpdateSessionInput struct {
	Actor             Actor
	SessionID         string
	Title             *string
	Description       *string
	ScheduledDateTime *time.Time
	Duration          *int
	MaxParticipants   *int
}

// PostMessageInput holds one chat message. Timestamp defaults to now.
type PostMessageInput struct {
	Actor     Actor
	SessionID string
	Text      string
	Timestamp *time.Time
}

// JoinSessionOutput reports the room to connect to and the resulting active
// participant count.
type JoinSessionOutput struct {
	RoomID           string
	ParticipantCount int
	Session          *models.LiveSession
}

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/descmd1/lms-backend/internal/services/livesession Service

// Service owns the live-session lifecycle: scheduling, state transitions,
// the participant roster, in-session chat, and notification fan-out.
type Service interface {
	CreateSession(ctx context.Context, input *CreateSessionInput) (*models.LiveSession, error)
	GetSession(ctx context.Context, actor Actor, sessionID string) (*models.LiveSession, error)
	ListCourseSessions(ctx context.Context, courseID string) ([]models.LiveSession, error)
	ListTutorSessions(ctx context.Context, actor Actor) ([]models.LiveSession, error)
	StartSession(ctx context.Context, actor Actor, sessionID string) (*models.LiveSession, error)
	EndSession(ctx context.Context, actor Actor, sessionID, recordingURL string) (*models.LiveSession, error)
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.LiveSession, error)
	DeleteSession(ctx context.Context, actor Actor, sessionID string) error
	JoinSession(ctx context.Context, actor Actor, sessionID string) (*JoinSessionOutput, error)
	LeaveSession(ctx context.Context, actor Actor, sessionID string) error
	PostMessage(ctx context.Context, input *PostMessageInput) (*models.ChatMessage, error)
	ListMessages(ctx context.Context, actor Actor, sessionID string) ([]models.ChatMessage, error)
}
