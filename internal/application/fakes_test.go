package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

// In-memory repository fakes. They return copies, so service-side mutations
// only stick after an explicit Update, matching the real store.

type memUserRepo struct {
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(u *entity.User) error {
	for _, ex := range m.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return repository.ErrDuplicate
		}
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%04d", m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByVerificationToken(token string) (*entity.User, error) {
	for _, u := range m.users {
		if u.VerificationToken != "" && u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) GetByResetToken(digest string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ResetPasswordToken != "" && u.ResetPasswordToken == digest {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Update(u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memPartnerRepo struct {
	users *memUserRepo
	seq   int
	links map[string]*entity.PartnerLink
}

func newMemPartnerRepo(users *memUserRepo) *memPartnerRepo {
	return &memPartnerRepo{users: users, links: map[string]*entity.PartnerLink{}}
}

func pairKey(a, b string) string {
	low, high := entity.NormalizePair(a, b)
	return low + "|" + high
}

func (m *memPartnerRepo) Get(userA, userB string) (*entity.PartnerLink, error) {
	l, ok := m.links[pairKey(userA, userB)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memPartnerRepo) Create(l *entity.PartnerLink) error {
	key := pairKey(l.UserLowID, l.UserHighID)
	if _, ok := m.links[key]; ok {
		return repository.ErrDuplicate
	}
	m.seq++
	l.ID = fmt.Sprintf("link-%04d", m.seq)
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	m.links[key] = &cp
	return nil
}

func (m *memPartnerRepo) UpdateStatus(userA, userB string, status entity.PartnerStatus) error {
	l, ok := m.links[pairKey(userA, userB)]
	if !ok {
		return repository.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (m *memPartnerRepo) Delete(userA, userB string) error {
	delete(m.links, pairKey(userA, userB))
	return nil
}

func (m *memPartnerRepo) ListViews(userID string) ([]entity.PartnerView, error) {
	var out []entity.PartnerView
	for _, l := range m.links {
		if !l.Involves(userID) {
			continue
		}
		v := entity.PartnerView{
			CounterpartyID: l.CounterpartyOf(userID),
			Status:         l.Status,
			InitiatedBy:    l.InitiatedBy,
		}
		if u, ok := m.users.users[v.CounterpartyID]; ok {
			v.CounterpartyName = u.Name
			v.CounterpartyEmail = u.Email
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CounterpartyID < out[j].CounterpartyID })
	return out, nil
}

func (m *memPartnerRepo) AcceptedPartnerIDs(userID string) ([]string, error) {
	var out []string
	for _, l := range m.links {
		if l.Involves(userID) && l.Status == entity.PartnerAccepted {
			out = append(out, l.CounterpartyOf(userID))
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ repository.PartnerLinkRepository = (*memPartnerRepo)(nil)

type memRecordRepo struct {
	seq     int
	records []entity.Record
}

func newMemRecordRepo() *memRecordRepo { return &memRecordRepo{} }

func (m *memRecordRepo) Create(r *entity.Record) error {
	m.seq++
	r.ID = fmt.Sprintf("rec-%04d", m.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.records = append(m.records, *r)
	return nil
}

func (m *memRecordRepo) CreateMany(rs []*entity.Record) error {
	for _, r := range rs {
		if err := m.Create(r); err != nil {
			return err
		}
	}
	return nil
}

func (m *memRecordRepo) GetByID(id string) (*entity.Record, error) {
	for i := range m.records {
		if m.records[i].ID == id {
			cp := m.records[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memRecordRepo) Delete(id string) error {
	for i := range m.records {
		if m.records[i].ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memRecordRepo) DeleteOwned(ids []string, ownerID string) (int64, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var kept []entity.Record
	var deleted int64
	for _, r := range m.records {
		if want[r.ID] && r.UserID == ownerID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

func (m *memRecordRepo) matches(r entity.Record, f repository.RecordFilter) bool {
	owned := false
	for _, id := range f.OwnerIDs {
		if r.UserID == id {
			owned = true
			break
		}
	}
	if !owned {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(f.To) {
		return false
	}
	return true
}

func (m *memRecordRepo) List(f repository.RecordFilter) ([]entity.Record, int64, error) {
	var all []entity.Record
	for _, r := range m.records {
		if m.matches(r, f) {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		var less bool
		switch f.SortBy {
		case "amount":
			less = a.Amount < b.Amount
		case "category":
			less = a.Category < b.Category
		case "spender":
			less = a.Spender < b.Spender
		case "created_at":
			less = a.CreatedAt.Before(b.CreatedAt)
		default:
			less = a.Date.Before(b.Date)
		}
		if f.SortDesc {
			return !less && !equalSortKey(a, b, f.SortBy)
		}
		return less
	})

	total := int64(len(all))
	start := (f.Page - 1) * f.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func equalSortKey(a, b entity.Record, sortBy string) bool {
	switch sortBy {
	case "amount":
		return a.Amount == b.Amount
	case "category":
		return a.Category == b.Category
	case "spender":
		return a.Spender == b.Spender
	case "created_at":
		return a.CreatedAt.Equal(b.CreatedAt)
	default:
		return a.Date.Equal(b.Date)
	}
}

func (m *memRecordRepo) AllByOwners(ownerIDs []string) ([]entity.Record, error) {
	var out []entity.Record
	for _, r := range m.records {
		for _, id := range ownerIDs {
			if r.UserID == id {
				out = append(out, r)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

var _ repository.RecordRepository = (*memRecordRepo)(nil)

// fakeQueue captures enqueued email jobs and can simulate broker failures.
type fakeQueue struct {
	jobs []any
	fail bool
}

func (q *fakeQueue) PublishJSON(_ context.Context, body any) error {
	if q.fail {
		return errors.New("broker unavailable")
	}
	q.jobs = append(q.jobs, body)
	return nil
}

var _ EmailPublisher = (*fakeQueue)(nil)
