package application

import (
	"errors"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

var (
	ErrSelfInvite    = errors.New("you cannot invite yourself")
	ErrAlreadyLinked = errors.New("partner link already exists")
	ErrNoInvitation  = errors.New("no invitation found")
)

// PartnerService manages the partner relationship lifecycle. Relationships
// are stored as single rows keyed by the unordered user pair, so invite and
// accept are one-row writes and both sides always observe the same status.
type PartnerService struct {
	Users repository.UserRepository
	Links repository.PartnerLinkRepository
}

func NewPartnerService(users repository.UserRepository, links repository.PartnerLinkRepository) *PartnerService {
	return &PartnerService{Users: users, Links: links}
}

// Invite creates a PENDING link from the actor to the user owning
// targetEmail. Duplicate invitations in either direction are rejected, in any
// status.
func (s *PartnerService) Invite(actorID, targetEmail string) error {
	target, err := s.Users.GetByEmail(targetEmail)
	if err != nil || target == nil {
		return ErrUserNotFound
	}
	if target.ID == actorID {
		return ErrSelfInvite
	}

	low, high := entity.NormalizePair(actorID, target.ID)
	link := &entity.PartnerLink{
		UserLowID:   low,
		UserHighID:  high,
		Status:      entity.PartnerPending,
		InitiatedBy: actorID,
	}
	if err := s.Links.Create(link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyLinked
		}
		return err
	}
	return nil
}

// Accept moves the relationship between actor and counterparty to ACCEPTED.
// Accepting an already accepted link is a no-op success.
func (s *PartnerService) Accept(actorID, counterpartyID string) error {
	link, err := s.Links.Get(actorID, counterpartyID)
	if err != nil {
		return ErrNoInvitation
	}
	if link.Status == entity.PartnerAccepted {
		return nil
	}
	if err := s.Links.UpdateStatus(actorID, counterpartyID, entity.PartnerAccepted); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoInvitation
		}
		return err
	}
	return nil
}

// Remove deletes the relationship in both directions. Idempotent.
func (s *PartnerService) Remove(actorID, counterpartyID string) error {
	return s.Links.Delete(actorID, counterpartyID)
}

// List returns the actor's partner links with resolved counterparties.
func (s *PartnerService) List(actorID string) ([]entity.PartnerView, error) {
	return s.Links.ListViews(actorID)
}

// ResolveOwnerSet turns a client-requested owner list into the set of user
// ids the actor may actually read: itself plus its ACCEPTED partners.
// Requested ids outside that set are dropped; an empty or fully rejected
// request falls back to just the actor.
func (s *PartnerService) ResolveOwnerSet(actorID string, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return []string{actorID}, nil
	}

	accepted, err := s.Links.AcceptedPartnerIDs(actorID)
	if err != nil {
		return nil, err
	}
	allowed := map[string]bool{actorID: true}
	for _, id := range accepted {
		allowed[id] = true
	}

	out := make([]string, 0, len(requested))
	seen := map[string]bool{}
	for _, id := range requested {
		if allowed[id] && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	if len(out) == 0 {
		out = append(out, actorID)
	}
	return out, nil
}
