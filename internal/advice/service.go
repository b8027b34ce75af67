package advice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/redmonkez12/carbon-tracker/internal/activity"
)

var ErrMessageRequired = errors.New("message is required")

// TopActivityFinder returns a user's highest-emission activity
type TopActivityFinder interface {
	Top(ctx context.Context, userID uuid.UUID) (*activity.Activity, error)
}

type Service struct {
	activities TopActivityFinder
}

func NewService(activities TopActivityFinder) *Service {
	return &Service{activities: activities}
}

// Recommendation picks a tip based on the user's highest-emission activity
func (s *Service) Recommendation(ctx context.Context, userID uuid.UUID) (string, error) {
	top, err := s.activities.Top(ctx, userID)
	if err != nil {
		if errors.Is(err, activity.ErrNoActivities) {
			return firstActivityTip, nil
		}
		return "", fmt.Errorf("failed to find top activity: %w", err)
	}
	return TipFor(top.ActivityType), nil
}

func (s *Service) Chat(message string) (string, error) {
	if message == "" {
		return "", ErrMessageRequired
	}
	return Reply(message), nil
}
