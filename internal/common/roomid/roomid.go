package roomid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roomid.go github.com/descmd1/lms-backend/internal/common/roomid Generator

// Generator produces room identifiers for live sessions. Identifiers combine
// a random token with the creation timestamp; a unique index on the session
// store backs up the (negligible) collision probability.
type Generator interface {
	NewRoomID() string
}

// DefaultGenerator builds room IDs from a UUID-derived token.
type DefaultGenerator struct{}

func New() *DefaultGenerator {
	return &DefaultGenerator{}
}

// NewRoomID returns an identifier like "room_4f9a1c2b0_1714828996123".
func (g *DefaultGenerator) NewRoomID() string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("room_%s_%d", token, time.Now().UnixMilli())
}
