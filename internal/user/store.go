package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store persists user records.
// Implementations must be safe for concurrent use.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Create inserts a user with no pending login code
	Create(ctx context.Context, email string) (*User, error)
	// SetLoginCode overwrites the pending code and its expiry
	SetLoginCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	// ClearLoginCode removes both the pending code and its expiry
	ClearLoginCode(ctx context.Context, id uuid.UUID) error
}
