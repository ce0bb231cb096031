package repository

import "github.com/ourwallet/ourwallet/internal/domain/entity"

// PartnerLinkRepository persists partner relationships as single rows keyed
// by the unordered user pair. Implementations must normalize the pair order
// themselves so callers can pass ids in either order.
type PartnerLinkRepository interface {
	Get(userA, userB string) (*entity.PartnerLink, error)
	Create(l *entity.PartnerLink) error
	UpdateStatus(userA, userB string, status entity.PartnerStatus) error
	Delete(userA, userB string) error
	ListViews(userID string) ([]entity.PartnerView, error)
	AcceptedPartnerIDs(userID string) ([]string, error)
}
