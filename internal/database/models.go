package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the users table row
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string     `bun:"email,notnull,unique"`
	OTP          *string    `bun:"otp"`
	OTPExpiresAt *time.Time `bun:"otp_expires_at"`
	CreatedAt    time.Time  `bun:"created_at,notnull,default:current_timestamp"`
}

// Activity is the activities table row
type Activity struct {
	bun.BaseModel `bun:"table:activities,alias:a"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID       uuid.UUID `bun:"user_id,type:uuid,notnull"`
	ActivityType string    `bun:"activity_type,notnull"`
	Amount       float64   `bun:"amount,notnull"`
	Unit         string    `bun:"unit,notnull"`
	Emission     float64   `bun:"emission,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
