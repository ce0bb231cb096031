package application

import (
	"errors"

	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

var (
	ErrSpenderExists   = errors.New("spender already exists")
	ErrSpenderNotFound = errors.New("spender not found")
	ErrLastSpender     = errors.New("cannot remove the last spender")
)

// SpenderService manages the per-user spender label list. Every user keeps
// at least one label.
type SpenderService struct {
	Users repository.UserRepository
}

func NewSpenderService(users repository.UserRepository) *SpenderService {
	return &SpenderService{Users: users}
}

// Add appends a new spender label and returns the updated list.
func (s *SpenderService) Add(actorID, name string) ([]string, error) {
	u, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if u.HasSpender(name) {
		return nil, ErrSpenderExists
	}
	u.Spenders = append(u.Spenders, name)
	if err := s.Users.Update(u); err != nil {
		return nil, err
	}
	return u.Spenders, nil
}

// Remove deletes a spender label and returns the updated list.
func (s *SpenderService) Remove(actorID, name string) ([]string, error) {
	u, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if !u.HasSpender(name) {
		return nil, ErrSpenderNotFound
	}
	if len(u.Spenders) == 1 {
		return nil, ErrLastSpender
	}
	kept := u.Spenders[:0]
	for _, sp := range u.Spenders {
		if sp != name {
			kept = append(kept, sp)
		}
	}
	u.Spenders = kept
	if err := s.Users.Update(u); err != nil {
		return nil, err
	}
	return u.Spenders, nil
}
