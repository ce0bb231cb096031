package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
)

func seedRecords(t *testing.T, repo *memRecordRepo, recs []entity.Record) {
	t.Helper()
	for i := range recs {
		r := recs[i]
		require.NoError(t, repo.Create(&r))
	}
}

func TestDashboardSummary(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 100, Type: entity.TypeIncome, Category: "Salary", Spender: "Joint", Date: day},
		{UserID: "u1", Amount: 40, Type: entity.TypeExpense, Category: "Food", Spender: "Joint", Date: day},
		{UserID: "u1", Amount: 10, Type: entity.TypeExpense, Category: "Food", Spender: "Joint", Date: day},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)

	assert.Equal(t, float64(100), d.Summary.TotalIncome)
	assert.Equal(t, float64(50), d.Summary.TotalExpense)
	assert.Equal(t, float64(50), d.Summary.Balance)
	assert.Equal(t, float64(50), d.Summary.SavingsRate)

	require.Len(t, d.CategoryBreakdown, 1)
	assert.Equal(t, CategoryTotal{Category: "Food", Total: 50}, d.CategoryBreakdown[0])
}

func TestDashboardBalanceInvariant(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 55.5, Type: entity.TypeIncome, Category: "Salary", Spender: "A", Date: day},
		{UserID: "u1", Amount: 120, Type: entity.TypeExpense, Category: "Rent", Spender: "A", Date: day},
		{UserID: "u2", Amount: 31.25, Type: entity.TypeExpense, Category: "Food", Spender: "B", Date: day},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1", "u2"})
	require.NoError(t, err)
	assert.InDelta(t, d.Summary.TotalIncome-d.Summary.TotalExpense, d.Summary.Balance, 1e-9)
	assert.Equal(t, float64(55.5), d.Summary.TotalIncome)
	assert.Equal(t, float64(151.25), d.Summary.TotalExpense)
}

func TestDashboardZeroIncomeSavingsRate(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 40, Type: entity.TypeExpense, Category: "Food", Spender: "Joint", Date: day},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), d.Summary.SavingsRate)
	assert.Equal(t, float64(-40), d.Summary.Balance)
}

func TestDashboardScopedToOwnerSet(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 100, Type: entity.TypeIncome, Category: "Salary", Spender: "Joint", Date: day},
		{UserID: "u2", Amount: 999, Type: entity.TypeIncome, Category: "Salary", Spender: "Joint", Date: day},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, float64(100), d.Summary.TotalIncome)
}

func TestTopExpensesOrderAndLimit(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	var recs []entity.Record
	for _, amt := range []float64{5, 30, 30, 100, 1, 7, 64} {
		recs = append(recs, entity.Record{
			UserID: "u1", Amount: amt, Type: entity.TypeExpense, Category: "Misc", Spender: "Joint", Date: day,
		})
	}
	recs = append(recs, entity.Record{
		UserID: "u1", Amount: 5000, Type: entity.TypeIncome, Category: "Salary", Spender: "Joint", Date: day,
	})
	seedRecords(t, repo, recs)

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)

	require.Len(t, d.TopExpenses, 5)
	assert.Equal(t, []float64{100, 64, 30, 30, 7},
		[]float64{d.TopExpenses[0].Amount, d.TopExpenses[1].Amount, d.TopExpenses[2].Amount, d.TopExpenses[3].Amount, d.TopExpenses[4].Amount})
	// Equal amounts tie-break on id, so the order is stable.
	assert.Less(t, d.TopExpenses[2].ID, d.TopExpenses[3].ID)
	for _, e := range d.TopExpenses {
		assert.Equal(t, "EXPENSE", e.Type)
	}
}

func TestMonthlyTrendsSortedByMonth(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 10, Type: entity.TypeExpense, Category: "Food", Spender: "J", Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)},
		{UserID: "u1", Amount: 200, Type: entity.TypeIncome, Category: "Salary", Spender: "J", Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{UserID: "u1", Amount: 20, Type: entity.TypeExpense, Category: "Food", Spender: "J", Date: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)

	require.Len(t, d.Trends, 2)
	assert.Equal(t, TrendPoint{Date: "2026-06", Income: 200, Expense: 20}, d.Trends[0])
	assert.Equal(t, TrendPoint{Date: "2026-08", Income: 0, Expense: 10}, d.Trends[1])
}

func TestDailyActivityWindow(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 10, Type: entity.TypeExpense, Category: "Food", Spender: "J", Date: now.AddDate(0, 0, -1)},
		{UserID: "u1", Amount: 20, Type: entity.TypeExpense, Category: "Food", Spender: "J", Date: now.AddDate(0, 0, -6)},
		{UserID: "u1", Amount: 99, Type: entity.TypeExpense, Category: "Food", Spender: "J", Date: now.AddDate(0, 0, -30)},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)

	require.Len(t, d.DailyActivity, 2)
	assert.Equal(t, "2026-08-24", d.DailyActivity[0].Date)
	assert.Equal(t, "2026-08-29", d.DailyActivity[1].Date)
}

func TestSpenderBreakdown(t *testing.T) {
	repo := newMemRecordRepo()
	svc := NewDashboardService(repo, nil)

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seedRecords(t, repo, []entity.Record{
		{UserID: "u1", Amount: 30, Type: entity.TypeExpense, Category: "Food", Spender: "Alice", Date: day},
		{UserID: "u1", Amount: 70, Type: entity.TypeExpense, Category: "Rent", Spender: "Joint", Date: day},
		{UserID: "u1", Amount: 15, Type: entity.TypeExpense, Category: "Food", Spender: "Alice", Date: day},
		{UserID: "u1", Amount: 500, Type: entity.TypeIncome, Category: "Salary", Spender: "Joint", Date: day},
	})

	d, err := svc.Dashboard(context.Background(), []string{"u1"})
	require.NoError(t, err)

	require.Len(t, d.SpenderBreakdown, 2)
	assert.Equal(t, SpenderTotal{Spender: "Joint", Total: 70}, d.SpenderBreakdown[0])
	assert.Equal(t, SpenderTotal{Spender: "Alice", Total: 45}, d.SpenderBreakdown[1])
}
