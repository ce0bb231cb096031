package entity

import (
	"time"
)

// DefaultSpender is seeded into every new user's spender list and used for
// records created without an explicit spender.
const DefaultSpender = "Joint"

// User is the aggregate root for the account domain.
// Password holds a bcrypt digest, never the plaintext.
//
// ResetPasswordToken stores the sha256 hex digest of the raw token mailed to
// the user; VerificationToken is stored in plain and is single-use.
type User struct {
	ID                   string
	Email                string
	Password             string
	Name                 string
	IsVerified           bool
	VerificationToken    string
	ResetPasswordToken   string
	ResetPasswordExpires time.Time
	Spenders             []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasSpender reports whether name is in the user's spender list.
func (u *User) HasSpender(name string) bool {
	for _, s := range u.Spenders {
		if s == name {
			return true
		}
	}
	return false
}
