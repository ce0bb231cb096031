package entity

import "time"

// PartnerStatus is the lifecycle state of a partner relationship.
type PartnerStatus string

const (
	PartnerPending  PartnerStatus = "PENDING"
	PartnerAccepted PartnerStatus = "ACCEPTED"
)

// PartnerLink is one relationship between two users, stored as a single row
// keyed by the unordered user pair. Both sides see the same status and
// initiator, so the two "mirrors" of the relationship can never diverge.
type PartnerLink struct {
	ID          string
	UserLowID   string // smaller of the two user ids
	UserHighID  string // larger of the two user ids
	Status      PartnerStatus
	InitiatedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Involves reports whether userID is one of the two parties.
func (l *PartnerLink) Involves(userID string) bool {
	return l.UserLowID == userID || l.UserHighID == userID
}

// CounterpartyOf returns the other party's id relative to userID.
func (l *PartnerLink) CounterpartyOf(userID string) string {
	if l.UserLowID == userID {
		return l.UserHighID
	}
	return l.UserLowID
}

// NormalizePair orders two user ids into the (low, high) storage form.
func NormalizePair(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// PartnerView is a PartnerLink as seen from one user's side, with the
// counterparty resolved for display.
type PartnerView struct {
	CounterpartyID    string
	CounterpartyName  string
	CounterpartyEmail string
	Status            PartnerStatus
	InitiatedBy       string
}
