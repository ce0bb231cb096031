package repository

import (
	"errors"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines user-related persistence operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByVerificationToken(token string) (*entity.User, error)
	GetByResetToken(digest string) (*entity.User, error)
	Update(u *entity.User) error
}
