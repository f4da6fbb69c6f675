package livesession

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/descmd1/lms-backend/internal/common/clock"
	"github.com/descmd1/lms-backend/internal/common/roomid"
	"github.com/descmd1/lms-backend/internal/models"
	"github.com/descmd1/lms-backend/internal/notify"
	courseRepo "github.com/descmd1/lms-backend/internal/repositories/course"
	enrollmentRepo "github.com/descmd1/lms-backend/internal/repositories/enrollment"
	sessionRepo "github.com/descmd1/lms-backend/internal/repositories/session"
	userRepo "github.com/descmd1/lms-backend/internal/repositories/user"
)

const (
	defaultDuration        = 60
	defaultMaxParticipants = 100

	// roomIDAttempts bounds the regenerate-on-collision loop. Collisions are
	// vanishingly rare; the unique index is the real guarantee.
	roomIDAttempts = 3
)

// Config holds the service dependencies.
type Config struct {
	SessionRepo    sessionRepo.Repository
	CourseRepo     courseRepo.Repository
	EnrollmentRepo enrollmentRepo.Repository
	UserRepo       userRepo.Repository
	Dispatcher     notify.Dispatcher
	Clock          clock.Clock
	RoomID         roomid.Generator
}

type service struct {
	sessionRepo    sessionRepo.Repository
	courseRepo     courseRepo.Repository
	enrollmentRepo enrollmentRepo.Repository
	userRepo       userRepo.Repository
	dispatcher     notify.Dispatcher
	clock          clock.Clock
	roomID         roomid.Generator
}

// New creates a live-session service.
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.CourseRepo == nil {
		return nil, ErrNilCourseRepo
	}
	if cfg.EnrollmentRepo == nil {
		return nil, ErrNilEnrollmentRepo
	}
	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}
	if cfg.Dispatcher == nil {
		return nil, ErrNilDispatcher
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.RoomID == nil {
		return nil, ErrNilRoomIDGen
	}

	return &service{
		sessionRepo:    cfg.SessionRepo,
		courseRepo:     cfg.CourseRepo,
		enrollmentRepo: cfg.EnrollmentRepo,
		userRepo:       cfg.UserRepo,
		dispatcher:     cfg.Dispatcher,
		clock:          cfg.Clock,
		roomID:         cfg.RoomID,
	}, nil
}

func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*models.LiveSession, error) {
	if input.Title == "" || input.CourseID == "" || input.ScheduledDateTime.IsZero() {
		return nil, ErrMissingFields
	}

	courseID, err := primitive.ObjectIDFromHex(input.CourseID)
	if err != nil {
		return nil, ErrInvalidID
	}
	tutorID, err := primitive.ObjectIDFromHex(input.Actor.ID)
	if err != nil {
		return nil, ErrInvalidID
	}

	// Ownership check: the actor must be the author of record for the course.
	course, err := s.courseRepo.GetByIDAndAuthor(ctx, courseID, input.Actor.Name)
	if err != nil {
		if errors.Is(err, courseRepo.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	room, err := s.newRoomID(ctx)
	if err != nil {
		return nil, err
	}

	duration := input.Duration
	if duration == 0 {
		duration = defaultDuration
	}
	maxParticipants := input.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = defaultMaxParticipants
	}

	now := s.clock.Now()
	session := &models.LiveSession{
		ID:                primitive.NewObjectID(),
		CourseID:          courseID,
		TutorID:           tutorID,
		Title:             input.Title,
		Description:       input.Description,
		ScheduledDateTime: input.ScheduledDateTime,
		Duration:          duration,
		MaxParticipants:   maxParticipants,
		RoomID:            room,
		Status:            models.SessionScheduled,
		Participants:      []models.Participant{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.fanOut(ctx, session, course.Title, false)

	return session, nil
}

// newRoomID generates a room identifier and verifies it is unused,
// regenerating on the unlikely collision.
func (s *service) newRoomID(ctx context.Context) (string, error) {
	var lastErr error
	for i := 0; i < roomIDAttempts; i++ {
		room := s.roomID.NewRoomID()
		exists, err := s.sessionRepo.RoomIDExists(ctx, room)
		if err != nil {
			return "", err
		}
		if !exists {
			return room, nil
		}
		lastErr = Error("room id collision")
	}
	return "", lastErr
}

func (s *service) GetSession(ctx context.Context, actor Actor, sessionID string) (*models.LiveSession, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, actor, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *service) ListCourseSessions(ctx context.Context, courseID string) ([]models.LiveSession, error) {
	id, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.sessionRepo.ListByCourse(ctx, id)
}

func (s *service) ListTutorSessions(ctx context.Context, actor Actor) ([]models.LiveSession, error) {
	id, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.sessionRepo.ListByTutor(ctx, id)
}

func (s *service) StartSession(ctx context.Context, actor Actor, sessionID string) (*models.LiveSession, error) {
	session, err := s.getOwnedSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionScheduled {
		return nil, ErrCannotStart
	}

	if err := s.sessionRepo.SetStatus(ctx, session.ID, models.SessionLive); err != nil {
		return nil, err
	}

	session.Status = models.SessionLive
	session.UpdatedAt = s.clock.Now()
	return session, nil
}

func (s *service) EndSession(ctx context.Context, actor Actor, sessionID, recordingURL string) (*models.LiveSession, error) {
	session, err := s.getOwnedSession(ctx, actor, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != models.SessionLive {
		return nil, ErrCannotEnd
	}

	if err := s.sessionRepo.Complete(ctx, session.ID, recordingURL); err != nil {
		return nil, err
	}

	session.Status = models.SessionCompleted
	if recordingURL != "" {
		session.RecordingURL = recordingURL
	}
	session.UpdatedAt = s.clock.Now()
	return session, nil
}

func (s *service) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.LiveSession, error) {
	session, err := s.getOwnedSession(ctx, input.Actor, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == models.SessionLive {
		return nil, ErrSessionIsLive
	}

	rescheduled := input.ScheduledDateTime != nil && !input.ScheduledDateTime.Equal(session.ScheduledDateTime)

	fields := sessionRepo.UpdateFields{
		Title:             input.Title,
		Description:       input.Description,
		ScheduledDateTime: input.ScheduledDateTime,
		Duration:          input.Duration,
		MaxParticipants:   input.MaxParticipants,
	}
	if err := s.sessionRepo.Update(ctx, session.ID, fields); err != nil {
		return nil, err
	}

	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.ScheduledDateTime != nil {
		session.ScheduledDateTime = *input.ScheduledDateTime
	}
	if input.Duration != nil {
		session.Duration = *input.Duration
	}
	if input.MaxParticipants != nil {
		session.MaxParticipants = *input.MaxParticipants
	}
	session.UpdatedAt = s.clock.Now()

	if rescheduled {
		courseTitle := ""
		if course, err := s.courseRepo.Get(ctx, session.CourseID); err == nil {
			courseTitle = course.Title
		}
		s.fanOut(ctx, session, courseTitle, true)
	}

	return session, nil
}

func (s *service) DeleteSession(ctx context.Context, actor Actor, sessionID string) error {
	session, err := s.getOwnedSession(ctx, actor, sessionID)
	if err != nil {
		return err
	}

	if session.Status == models.SessionLive {
		return ErrSessionIsLive
	}

	return s.sessionRepo.Delete(ctx, session.ID)
}

func (s *service) JoinSession(ctx context.Context, actor Actor, sessionID string) (*JoinSessionOutput, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, actor, session); err != nil {
		return nil, err
	}

	if session.Status != models.SessionLive {
		return nil, ErrSessionNotLive
	}

	// Capacity is checked against the loaded document; concurrent joins can
	// race past it, which is tolerated rather than locked against.
	if session.ActiveParticipantCount() >= session.MaxParticipants {
		return nil, ErrAtCapacity
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, ErrInvalidID
	}

	added, err := s.sessionRepo.AddParticipant(ctx, session.ID, userID, s.clock.Now())
	if err != nil {
		return nil, err
	}

	count := session.ActiveParticipantCount()
	if added {
		count++
	}

	return &JoinSessionOutput{
		RoomID:           session.RoomID,
		ParticipantCount: count,
		Session:          session,
	}, nil
}

func (s *service) LeaveSession(ctx context.Context, actor Actor, sessionID string) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	userID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return ErrInvalidID
	}

	// Leaving without an active entry is a no-op, not an error.
	_, err = s.sessionRepo.MarkParticipantLeft(ctx, session.ID, userID, s.clock.Now())
	return err
}

func (s *service) PostMessage(ctx context.Context, input *PostMessageInput) (*models.ChatMessage, error) {
	if input.Text == "" {
		return nil, ErrMissingFields
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, input.Actor, session); err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(input.Actor.ID)
	if err != nil {
		return nil, ErrInvalidID
	}

	now := s.clock.Now()
	timestamp := now
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}

	msg := &models.ChatMessage{
		SessionID: session.ID,
		UserID:    userID,
		UserName:  input.Actor.Name,
		UserRole:  input.Actor.Role,
		Text:      input.Text,
		Timestamp: timestamp,
		CreatedAt: now,
	}

	if err := s.sessionRepo.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *service) ListMessages(ctx context.Context, actor Actor, sessionID string) ([]models.ChatMessage, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(ctx, actor, session); err != nil {
		return nil, err
	}

	return s.sessionRepo.ListMessages(ctx, session.ID)
}

// canAccess is the gate shared by view, join, and chat operations: the
// session's tutor always passes, anyone else needs an enrollment on the
// session's course.
func (s *service) canAccess(ctx context.Context, actor Actor, session *models.LiveSession) error {
	if actor.ID == session.TutorID.Hex() {
		return nil
	}

	_, err := s.enrollmentRepo.Find(ctx, actor.ID, session.CourseID.Hex())
	if err != nil {
		if errors.Is(err, enrollmentRepo.ErrNotFound) {
			return ErrNotEnrolled
		}
		return err
	}
	return nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.LiveSession, error) {
	id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrInvalidID
	}

	session, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// getOwnedSession loads a session only when the actor is its tutor. Absence
// and foreign ownership are reported identically.
func (s *service) getOwnedSession(ctx context.Context, actor Actor, sessionID string) (*models.LiveSession, error) {
	id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, ErrInvalidID
	}
	tutorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		return nil, ErrInvalidID
	}

	session, err := s.sessionRepo.GetByIDAndTutor(ctx, id, tutorID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
