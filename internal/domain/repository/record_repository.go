package repository

import (
	"time"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
)

// RecordFilter narrows and orders a record listing. OwnerIDs must be
// non-empty; the caller resolves it from the partner model.
type RecordFilter struct {
	OwnerIDs []string
	Type     entity.RecordType // empty = both
	Category string            // empty = all
	From     time.Time         // zero = unbounded
	To       time.Time         // zero = unbounded
	SortBy   string            // date, amount, category, spender, created_at
	SortDesc bool
	Page     int // 1-based
	Limit    int
}

// RecordRepository defines record persistence operations.
type RecordRepository interface {
	Create(r *entity.Record) error
	// CreateMany inserts all records in one transaction; on error nothing
	// is persisted.
	CreateMany(rs []*entity.Record) error
	GetByID(id string) (*entity.Record, error)
	Delete(id string) error
	// DeleteOwned removes the given ids that belong to ownerID and returns
	// how many rows were actually deleted.
	DeleteOwned(ids []string, ownerID string) (int64, error)
	// List returns one page of records plus the total match count.
	List(f RecordFilter) ([]entity.Record, int64, error)
	// AllByOwners returns every record for the owner set, newest first.
	AllByOwners(ownerIDs []string) ([]entity.Record, error)
}
