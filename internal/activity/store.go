package activity

import (
	"context"

	"github.com/google/uuid"
)

// Store persists activities. ListByUser returns newest first.
type Store interface {
	Create(ctx context.Context, a *Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error)
}
