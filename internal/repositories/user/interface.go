package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/descmd1/lms-backend/internal/models"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/descmd1/lms-backend/internal/repositories/user Repository

// Repository exposes the user lookups the live-session core needs, mainly to
// resolve notification recipients.
type Repository interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// ListByIDs resolves users for a batch of identifiers in hex form.
	// Unknown identifiers are skipped, not reported as errors.
	ListByIDs(ctx context.Context, ids []string) ([]models.User, error)
}
