package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrNotRecordOwner = errors.New("user not authorized")
	ErrInvalidRecord  = errors.New("invalid record")
	ErrEmptyBatch     = errors.New("expected a non-empty array of records")
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// RecordService implements the record store: filtered paged listing, single
// and bulk creation, and owner-checked deletion.
type RecordService struct {
	Records repository.RecordRepository
	Cache   *DashboardCache // optional; bumped on every mutation
}

func NewRecordService(records repository.RecordRepository, cache *DashboardCache) *RecordService {
	return &RecordService{Records: records, Cache: cache}
}

// RecordInput is one record payload from the client. Amount is a pointer so
// a missing amount is distinguishable from zero.
type RecordInput struct {
	Amount      *float64
	Type        string
	Category    string
	Description string
	Spender     string
	Date        time.Time
}

func (in *RecordInput) toRecord(ownerID string) (*entity.Record, error) {
	if in.Amount == nil || in.Type == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: amount, type and category are required", ErrInvalidRecord)
	}
	if *in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidRecord)
	}
	typ := entity.RecordType(in.Type)
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: type must be INCOME or EXPENSE", ErrInvalidRecord)
	}

	rec := &entity.Record{
		UserID:      ownerID, // owner forced server-side regardless of payload
		Amount:      *in.Amount,
		Type:        typ,
		Category:    in.Category,
		Description: in.Description,
		Spender:     in.Spender,
		Date:        in.Date,
	}
	if rec.Spender == "" {
		rec.Spender = entity.DefaultSpender
	}
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	return rec, nil
}

// ListQuery is a client listing request after owner-set resolution.
type ListQuery struct {
	OwnerIDs []string
	Type     string
	Category string
	From     time.Time
	To       time.Time
	SortBy   string
	Order    string // asc or desc
	Page     int
	Limit    int
}

// ListResult is one page of records plus paging metadata.
type ListResult struct {
	Records      []entity.Record
	TotalRecords int64
	TotalPages   int64
	CurrentPage  int
}

// List returns a page of records for the resolved owner set.
func (s *RecordService) List(actorID string, q ListQuery) (*ListResult, error) {
	if len(q.OwnerIDs) == 0 {
		q.OwnerIDs = []string{actorID}
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = "date"
	}

	f := repository.RecordFilter{
		OwnerIDs: q.OwnerIDs,
		Type:     entity.RecordType(q.Type),
		Category: q.Category,
		From:     q.From,
		To:       q.To,
		SortBy:   q.SortBy,
		SortDesc: q.Order != "asc", // desc unless explicitly ascending
		Page:     q.Page,
		Limit:    q.Limit,
	}
	recs, total, err := s.Records.List(f)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(q.Limit)
	if total%int64(q.Limit) != 0 {
		totalPages++
	}
	return &ListResult{
		Records:      recs,
		TotalRecords: total,
		TotalPages:   totalPages,
		CurrentPage:  q.Page,
	}, nil
}

// Create validates and stores a single record owned by the actor.
func (s *RecordService) Create(actorID string, in RecordInput) (*entity.Record, error) {
	rec, err := in.toRecord(actorID)
	if err != nil {
		return nil, err
	}
	if err := s.Records.Create(rec); err != nil {
		return nil, err
	}
	s.Cache.Bump(actorID)
	return rec, nil
}

// Delete removes a record the actor owns. Deleting someone else's record is
// Forbidden even when the id exists.
func (s *RecordService) Delete(actorID, recordID string) error {
	rec, err := s.Records.GetByID(recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	if rec.UserID != actorID {
		return ErrNotRecordOwner
	}
	if err := s.Records.Delete(recordID); err != nil {
		return err
	}
	s.Cache.Bump(actorID)
	return nil
}

// BulkImport inserts all records or none: every row is validated before the
// batch touches the store, and the store runs the insert in one transaction.
func (s *RecordService) BulkImport(actorID string, inputs []RecordInput) ([]entity.Record, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	recs := make([]*entity.Record, 0, len(inputs))
	for i := range inputs {
		rec, err := inputs[i].toRecord(actorID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		recs = append(recs, rec)
	}
	if err := s.Records.CreateMany(recs); err != nil {
		return nil, err
	}
	s.Cache.Bump(actorID)

	out := make([]entity.Record, len(recs))
	for i, r := range recs {
		out[i] = *r
	}
	return out, nil
}

// BulkDelete removes the actor-owned subset of ids and reports how many rows
// were actually deleted. Ids owned by other users are silently skipped.
func (s *RecordService) BulkDelete(actorID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyBatch
	}
	count, err := s.Records.DeleteOwned(ids, actorID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.Cache.Bump(actorID)
	}
	return count, nil
}
