package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	OTP          *string    `json:"-"` // pending login code, nil when none
	OTPExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HasPendingCode reports whether a login code is outstanding.
// Code and expiry are always written and cleared together.
func (u *User) HasPendingCode() bool {
	return u.OTP != nil && u.OTPExpiresAt != nil
}
