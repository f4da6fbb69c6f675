package enrollment

import (
	"context"
	"errors"

	"github.com/descmd1/lms-backend/internal/models"
)

// ErrNotFound is returned when no enrollment matches the query.
var ErrNotFound = errors.New("enrollment not found")

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/descmd1/lms-backend/internal/repositories/enrollment Repository

// Repository reads and writes course enrollments. Identifiers are passed as
// hex strings; implementations must match documents regardless of whether
// the stored identifier is an ObjectID or a string (older writers used both).
type Repository interface {
	Find(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
}
