package activity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/redmonkez12/carbon-tracker/internal/emission"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

var (
	ErrActivityTypeRequired = errors.New("activity type is required")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrFactorNotFound       = errors.New("emission factor not found")
	ErrNoActivities         = errors.New("no activities logged")
)

type Service struct {
	store  Store
	logger *logging.Logger
	now    func() time.Time
}

func NewService(store Store, logger *logging.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Log records an activity, pricing it with the factor for its type
func (s *Service) Log(ctx context.Context, userID uuid.UUID, activityType string, amount float64) (*Activity, error) {
	if activityType == "" {
		return nil, ErrActivityTypeRequired
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, ErrInvalidAmount
	}

	factor, ok := emission.Lookup(activityType)
	if !ok {
		return nil, ErrFactorNotFound
	}

	a := &Activity{
		ID:           uuid.New(),
		UserID:       userID,
		ActivityType: activityType,
		Amount:       amount,
		Unit:         factor.AmountUnit(),
		Emission:     factor.Emission(amount),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("activity logged",
		"user_id", userID.String(),
		"activity_type", activityType,
		"emission", a.Emission,
	)
	return a, nil
}

// List returns the user's activities, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	activities, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// Top returns the user's single highest-emission activity.
// Ties go to the most recent one.
func (s *Service) Top(ctx context.Context, userID uuid.UUID) (*Activity, error) {
	activities, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	top := topActivity(activities)
	if top == nil {
		return nil, ErrNoActivities
	}
	return top, nil
}

// Summary totals emissions overall and per activity type
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	activities, err := s.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize activities: %w", err)
	}

	summary := &Summary{
		ByType: make(map[string]float64),
		Count:  len(activities),
	}
	for _, a := range activities {
		summary.TotalEmission += a.Emission
		summary.ByType[a.ActivityType] += a.Emission
	}

	summary.TotalEmission = emission.Round2(summary.TotalEmission)
	for k, v := range summary.ByType {
		summary.ByType[k] = emission.Round2(v)
	}
	if top := topActivity(activities); top != nil {
		summary.TopActivity = top.ActivityType
	}

	return summary, nil
}

// topActivity expects newest-first input
func topActivity(activities []Activity) *Activity {
	var top *Activity
	for i := range activities {
		if top == nil || activities[i].Emission > top.Emission {
			top = &activities[i]
		}
	}
	return top
}
