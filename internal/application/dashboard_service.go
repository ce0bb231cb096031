package application

import (
	"context"
	"sort"
	"time"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

// RecordDTO is a record in API responses and cached dashboards.
type RecordDTO struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName,omitempty"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Spender     string    `json:"spender"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewRecordDTO(r entity.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		Amount:      r.Amount,
		Type:        string(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Spender:     r.Spender,
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// Summary holds the headline totals.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
	SavingsRate  float64 `json:"savingsRate"`
}

// CategoryTotal is an expense sum grouped by category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// TrendPoint is one month's income/expense totals, keyed "YYYY-MM".
type TrendPoint struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// DayActivity is one calendar day's income/expense totals, keyed "YYYY-MM-DD".
type DayActivity struct {
	Date    string  `json:"date"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// SpenderTotal is an expense sum grouped by spender label.
type SpenderTotal struct {
	Spender string  `json:"spender"`
	Total   float64 `json:"total"`
}

// Dashboard is the full aggregation payload for one owner set.
type Dashboard struct {
	Summary           Summary         `json:"summary"`
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	Trends            []TrendPoint    `json:"trends"`
	DailyActivity     []DayActivity   `json:"dailyActivity"`
	TopExpenses       []RecordDTO     `json:"topExpenses"`
	SpenderBreakdown  []SpenderTotal  `json:"spenderBreakdown"`
}

const topExpenseCount = 5

// DashboardService derives all dashboard aggregates from the record store.
// Volumes are household-sized, so the aggregation runs in memory over one
// owner-set query rather than as six separate SQL aggregates.
type DashboardService struct {
	Records repository.RecordRepository
	Cache   *DashboardCache

	now func() time.Time // injectable for tests
}

func NewDashboardService(records repository.RecordRepository, cache *DashboardCache) *DashboardService {
	return &DashboardService{Records: records, Cache: cache, now: time.Now}
}

// Dashboard computes every aggregate over the same owner-set filter. Each
// output is derived independently from the raw records.
func (s *DashboardService) Dashboard(ctx context.Context, ownerIDs []string) (*Dashboard, error) {
	var cached Dashboard
	if s.Cache.Get(ctx, ownerIDs, &cached) {
		return &cached, nil
	}

	recs, err := s.Records.AllByOwners(ownerIDs)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Summary:           summarize(recs),
		CategoryBreakdown: categoryBreakdown(recs),
		Trends:            monthlyTrends(recs),
		DailyActivity:     dailyActivity(recs, s.now()),
		TopExpenses:       topExpenses(recs),
		SpenderBreakdown:  spenderBreakdown(recs),
	}
	s.Cache.Set(ctx, ownerIDs, d)
	return d, nil
}

func summarize(recs []entity.Record) Summary {
	var sum Summary
	for _, r := range recs {
		switch r.Type {
		case entity.TypeIncome:
			sum.TotalIncome += r.Amount
		case entity.TypeExpense:
			sum.TotalExpense += r.Amount
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense
	if sum.TotalIncome > 0 {
		sum.SavingsRate = sum.Balance / sum.TotalIncome * 100
	}
	return sum
}

func categoryBreakdown(recs []entity.Record) []CategoryTotal {
	totals := map[string]float64{}
	for _, r := range recs {
		if r.Type == entity.TypeExpense {
			totals[r.Category] += r.Amount
		}
	}
	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func monthlyTrends(recs []entity.Record) []TrendPoint {
	byMonth := map[string]*TrendPoint{}
	for _, r := range recs {
		key := r.Date.Format("2006-01")
		p, ok := byMonth[key]
		if !ok {
			p = &TrendPoint{Date: key}
			byMonth[key] = p
		}
		switch r.Type {
		case entity.TypeIncome:
			p.Income += r.Amount
		case entity.TypeExpense:
			p.Expense += r.Amount
		}
	}
	out := make([]TrendPoint, 0, len(byMonth))
	for _, p := range byMonth {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func dailyActivity(recs []entity.Record, now time.Time) []DayActivity {
	cutoff := now.AddDate(0, 0, -7)
	byDay := map[string]*DayActivity{}
	for _, r := range recs {
		if r.Date.Before(cutoff) {
			continue
		}
		key := r.Date.Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			d = &DayActivity{Date: key}
			byDay[key] = d
		}
		switch r.Type {
		case entity.TypeIncome:
			d.Income += r.Amount
		case entity.TypeExpense:
			d.Expense += r.Amount
		}
	}
	out := make([]DayActivity, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// topExpenses returns the five largest expenses, ties broken by id so equal
// inputs always produce the same order.
func topExpenses(recs []entity.Record) []RecordDTO {
	expenses := make([]entity.Record, 0, len(recs))
	for _, r := range recs {
		if r.Type == entity.TypeExpense {
			expenses = append(expenses, r)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if expenses[i].Amount != expenses[j].Amount {
			return expenses[i].Amount > expenses[j].Amount
		}
		return expenses[i].ID < expenses[j].ID
	})
	if len(expenses) > topExpenseCount {
		expenses = expenses[:topExpenseCount]
	}
	out := make([]RecordDTO, len(expenses))
	for i, r := range expenses {
		out[i] = NewRecordDTO(r)
	}
	return out
}

func spenderBreakdown(recs []entity.Record) []SpenderTotal {
	totals := map[string]float64{}
	for _, r := range recs {
		if r.Type == entity.TypeExpense {
			totals[r.Spender] += r.Amount
		}
	}
	out := make([]SpenderTotal, 0, len(totals))
	for sp, total := range totals {
		out = append(out, SpenderTotal{Spender: sp, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Spender < out[j].Spender
	})
	return out
}
