package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each user in a hash with an email -> id index key
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func userKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

func emailKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// Create writes the user hash before pointing the email index at it, so the
// index never names a missing hash. The loser of a race removes its own hash.
func (s *RedisStore) Create(ctx context.Context, email string) (*User, error) {
	u := &User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	err := s.client.HSet(ctx, userKey(u.ID), map[string]any{
		"id":         u.ID.String(),
		"email":      u.Email,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	claimed, err := s.claimEmail(ctx, email, u.ID)
	if err != nil || !claimed {
		s.client.Del(ctx, userKey(u.ID))
		if err != nil {
			return nil, fmt.Errorf("failed to reserve email: %w", err)
		}
		return nil, ErrDuplicateEmail
	}

	return u, nil
}

// claimEmail points the email index at id unless it already names a stored user.
// An index entry whose hash is gone is taken over.
func (s *RedisStore) claimEmail(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	key := emailKey(email)
	claimed := false

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			n, err := tx.Exists(ctx, "user:"+current).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, id.String(), 0)
			return nil
		})
		if err != nil {
			return err
		}
		claimed = true
		return nil
	}, key)

	// Someone else changed the index between our read and write
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return claimed, err
}

func (s *RedisStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	idStr, err := s.client.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *RedisStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	data, err := s.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}

	return parseUserHash(data)
}

func (s *RedisStore) SetLoginCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	err := s.client.HSet(ctx, userKey(id), map[string]any{
		"otp":            code,
		"otp_expires_at": expiresAt.UTC().Format(time.RFC3339Nano),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to set login code: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearLoginCode(ctx context.Context, id uuid.UUID) error {
	if err := s.requireExists(ctx, id); err != nil {
		return err
	}

	if err := s.client.HDel(ctx, userKey(id), "otp", "otp_expires_at").Err(); err != nil {
		return fmt.Errorf("failed to clear login code: %w", err)
	}
	return nil
}

func (s *RedisStore) requireExists(ctx context.Context, id uuid.UUID) error {
	n, err := s.client.Exists(ctx, userKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func parseUserHash(data map[string]string) (*User, error) {
	id, err := uuid.Parse(data["id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse user ID: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, data["created_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	u := &User{ID: id, Email: data["email"], CreatedAt: createdAt}

	code, hasCode := data["otp"]
	rawExpiry, hasExpiry := data["otp_expires_at"]
	if hasCode && hasExpiry {
		expiresAt, err := time.Parse(time.RFC3339Nano, rawExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to parse otp_expires_at: %w", err)
		}
		u.OTP = &code
		u.OTPExpiresAt = &expiresAt
	}

	return u, nil
}
