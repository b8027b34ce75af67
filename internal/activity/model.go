package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one logged action and the CO2 it produced
type Activity struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Amount       float64   `json:"amount"`
	Unit         string    `json:"unit"`
	Emission     float64   `json:"emission"` // kg CO2
	CreatedAt    time.Time `json:"created_at"`
}

// Summary aggregates a user's activities for the dashboard
type Summary struct {
	TotalEmission float64            `json:"total_emission"`
	TopActivity   string             `json:"top_activity,omitempty"`
	ByType        map[string]float64 `json:"by_type"`
	Count         int                `json:"count"`
}
