package course

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/descmd1/lms-backend/internal/models"
)

// ErrNotFound is returned when no course matches the query.
var ErrNotFound = errors.New("course not found")

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/descmd1/lms-backend/internal/repositories/course Repository

// Repository exposes the course lookups the live-session core needs.
type Repository interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	// GetByIDAndAuthor returns ErrNotFound when the course is absent or owned
	// by a different author; the two cases are deliberately indistinguishable.
	GetByIDAndAuthor(ctx context.Context, id primitive.ObjectID, author string) (*models.Course, error)
}
