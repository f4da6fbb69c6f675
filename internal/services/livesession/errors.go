package livesession

// Error is a typed error for live-session failures.
type Error string

// Error implements the error interface
func (e Error) Error() string {
	return string(e)
}

const (
	// ErrSessionNotFound covers both an absent session and a session owned by
	// another tutor, so callers cannot probe for existence.
	ErrSessionNotFound Error = "session not found or unauthorized"
	// ErrCourseNotFound covers both an absent course and a course owned by
	// another author.
	ErrCourseNotFound Error = "course not found or you don't have permission"
	ErrNotEnrolled    Error = "you must be enrolled in this course"
	ErrCannotStart    Error = "session cannot be started"
	ErrCannotEnd      Error = "only a live session can be ended"
	ErrSessionIsLive  Error = "cannot modify a session while it is live"
	ErrSessionNotLive Error = "session is not currently live"
	ErrAtCapacity     Error = "session is at maximum capacity"
	ErrMissingFields  Error = "missing required fields"
	ErrInvalidID      Error = "invalid identifier"

	ErrNilConfig         Error = "config cannot be nil"
	ErrNilSessionRepo    Error = "session repository cannot be nil"
	ErrNilCourseRepo     Error = "course repository cannot be nil"
	ErrNilEnrollmentRepo Error = "enrollment repository cannot be nil"
	ErrNilUserRepo       Error = "user repository cannot be nil"
	ErrNilDispatcher     Error = "notification dispatcher cannot be nil"
	ErrNilClock          Error = "clock cannot be nil"
	ErrNilRoomIDGen      Error = "room id generator cannot be nil"
)
