package activity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/carbon-tracker/internal/database"
)

// Repository handles activity persistence in Postgres
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *Activity) error {
	dbActivity := &database.Activity{
		ID:           a.ID,
		UserID:       a.UserID,
		ActivityType: a.ActivityType,
		Amount:       a.Amount,
		Unit:         a.Unit,
		Emission:     a.Emission,
		CreatedAt:    a.CreatedAt,
	}

	if _, err := r.db.NewInsert().Model(dbActivity).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Activity, error) {
	var rows []database.Activity
	err := r.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	out := make([]Activity, 0, len(rows))
	for i := range rows {
		out = append(out, mapDBActivityToModel(&rows[i]))
	}
	return out, nil
}

func mapDBActivityToModel(dba *database.Activity) Activity {
	return Activity{
		ID:           dba.ID,
		UserID:       dba.UserID,
		ActivityType: dba.ActivityType,
		Amount:       dba.Amount,
		Unit:         dba.Unit,
		Emission:     dba.Emission,
		CreatedAt:    dba.CreatedAt,
	}
}
