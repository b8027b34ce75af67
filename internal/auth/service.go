package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
	"github.com/redmonkez12/carbon-tracker/internal/user"
)

// EmailService delivers login codes to users
type EmailService interface {
	SendLoginCode(ctx context.Context, toEmail, code string, ttl time.Duration) error
}

// Principal identifies the bearer of a verified session token
type Principal struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now as the source of the current time
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCodeGenerator replaces GenerateLoginCode
func WithCodeGenerator(generate func() (string, error)) Option {
	return func(s *Service) { s.generateCode = generate }
}

// Service runs the passwordless login flow: request a code, verify it, get a session token.
type Service struct {
	users                user.Store
	tokenService         TokenService
	emailService         EmailService
	logger               *logging.Logger
	loginCodeTTL         time.Duration
	sessionTokenDuration time.Duration
	generateCode         func() (string, error)
	now                  func() time.Time
}

func NewService(
	users user.Store,
	tokenService TokenService,
	emailService EmailService,
	logger *logging.Logger,
	loginCodeTTL time.Duration,
	sessionTokenDuration time.Duration,
	opts ...Option,
) *Service {
	s := &Service{
		users:                users,
		tokenService:         tokenService,
		emailService:         emailService,
		logger:               logger,
		loginCodeTTL:         loginCodeTTL,
		sessionTokenDuration: sessionTokenDuration,
		generateCode:         GenerateLoginCode,
		now:                  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestLoginCode issues a fresh code for email, creating the user on first contact.
// Any code issued earlier for the same user stops being valid.
func (s *Service) RequestLoginCode(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}

	u, err := s.findOrCreateUser(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.generateCode()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.loginCodeTTL)
	if err := s.users.SetLoginCode(ctx, u.ID, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store login code: %w", err)
	}

	if err := s.emailService.SendLoginCode(ctx, email, code, s.loginCodeTTL); err != nil {
		return fmt.Errorf("failed to send login code: %w", err)
	}

	s.logger.Info("login code issued", "user_id", u.ID.String(), "expires_at", expiresAt)
	return nil
}

// VerifyLoginCode exchanges a valid code for a session token.
// The code is consumed on success; failed attempts leave it in place.
func (s *Service) VerifyLoginCode(ctx context.Context, email, code string) (string, error) {
	if email == "" || code == "" {
		return "", ErrEmailAndCodeRequired
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if u.OTP == nil || subtle.ConstantTimeCompare([]byte(*u.OTP), []byte(code)) != 1 {
		return "", ErrInvalidCode
	}

	// A code without an expiry is treated as already expired
	if u.OTPExpiresAt == nil || s.now().After(*u.OTPExpiresAt) {
		return "", ErrCodeExpired
	}

	if err := s.users.ClearLoginCode(ctx, u.ID); err != nil {
		return "", fmt.Errorf("failed to clear login code: %w", err)
	}

	token, err := s.tokenService.CreateToken(u.ID, u.Email, s.sessionTokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to create session token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", u.ID.String())
	return token, nil
}

// Authenticate validates a session token and returns who it belongs to
func (s *Service) Authenticate(token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.tokenService.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Principal{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// Profile returns the user behind an authenticated request
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *Service) findOrCreateUser(ctx context.Context, email string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u, err = s.users.Create(ctx, email)
	if errors.Is(err, user.ErrDuplicateEmail) {
		// Lost a race with a concurrent first login for the same address
		u, err = s.users.GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", u.ID.String())
	return u, nil
}
