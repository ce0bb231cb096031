package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
)

func amount(v float64) *float64 { return &v }

func newRecordFixture() (*RecordService, *memRecordRepo) {
	records := newMemRecordRepo()
	return NewRecordService(records, nil), records
}

func TestCreateRecordDefaults(t *testing.T) {
	svc, _ := newRecordFixture()

	rec, err := svc.Create("user-1", RecordInput{
		Amount:   amount(42.5),
		Type:     "EXPENSE",
		Category: "Food",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, entity.DefaultSpender, rec.Spender)
	assert.False(t, rec.Date.IsZero())
}

func TestCreateRecordValidation(t *testing.T) {
	svc, _ := newRecordFixture()

	cases := []struct {
		name string
		in   RecordInput
	}{
		{"missing amount", RecordInput{Type: "EXPENSE", Category: "Food"}},
		{"negative amount", RecordInput{Amount: amount(-1), Type: "EXPENSE", Category: "Food"}},
		{"missing type", RecordInput{Amount: amount(1), Category: "Food"}},
		{"bad type", RecordInput{Amount: amount(1), Type: "TRANSFER", Category: "Food"}},
		{"missing category", RecordInput{Amount: amount(1), Type: "EXPENSE"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create("user-1", tc.in)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}

	// Zero amount is allowed.
	_, err := svc.Create("user-1", RecordInput{Amount: amount(0), Type: "INCOME", Category: "Misc"})
	assert.NoError(t, err)
}

func TestDeleteChecksOwnership(t *testing.T) {
	svc, _ := newRecordFixture()

	rec, err := svc.Create("user-1", RecordInput{Amount: amount(10), Type: "EXPENSE", Category: "Food"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete("user-2", rec.ID), ErrNotRecordOwner)
	assert.ErrorIs(t, svc.Delete("user-1", "rec-9999"), ErrRecordNotFound)
	assert.NoError(t, svc.Delete("user-1", rec.ID))
	assert.ErrorIs(t, svc.Delete("user-1", rec.ID), ErrRecordNotFound)
}

func TestListPagination(t *testing.T) {
	svc, _ := newRecordFixture()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Create("user-1", RecordInput{
			Amount:   amount(float64(10 * (i + 1))),
			Type:     "EXPENSE",
			Category: "Food",
			Date:     base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	res, err := svc.List("user-1", ListQuery{Page: 2, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.TotalRecords)
	assert.Equal(t, int64(3), res.TotalPages)
	assert.Equal(t, 2, res.CurrentPage)
	require.Len(t, res.Records, 1)
	// Default sort is date descending, so page 2 holds the middle record.
	assert.Equal(t, base.AddDate(0, 0, 1), res.Records[0].Date)

	// A page past the end is empty but keeps the totals.
	res, err = svc.List("user-1", ListQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	assert.Equal(t, int64(3), res.TotalRecords)
	assert.Equal(t, int64(2), res.TotalPages)
}

func TestListFilters(t *testing.T) {
	svc, _ := newRecordFixture()

	day := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	seed := []RecordInput{
		{Amount: amount(100), Type: "INCOME", Category: "Salary", Date: day},
		{Amount: amount(40), Type: "EXPENSE", Category: "Food", Date: day.AddDate(0, 0, 1)},
		{Amount: amount(10), Type: "EXPENSE", Category: "Transport", Date: day.AddDate(0, 0, 10)},
	}
	for _, in := range seed {
		_, err := svc.Create("user-1", in)
		require.NoError(t, err)
	}

	res, err := svc.List("user-1", ListQuery{Type: "EXPENSE"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalRecords)

	res, err = svc.List("user-1", ListQuery{Category: "Food"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.TotalRecords)

	res, err = svc.List("user-1", ListQuery{From: day, To: day.AddDate(0, 0, 5)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.TotalRecords)

	// Amount ascending puts the smallest first.
	res, err = svc.List("user-1", ListQuery{SortBy: "amount", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, float64(10), res.Records[0].Amount)
}

func TestBulkImportAllOrNothing(t *testing.T) {
	svc, repo := newRecordFixture()

	_, err := svc.BulkImport("user-1", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	batch := []RecordInput{
		{Amount: amount(10), Type: "EXPENSE", Category: "Food"},
		{Amount: amount(20), Type: "BOGUS", Category: "Food"},
	}
	_, err = svc.BulkImport("user-1", batch)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.Contains(t, err.Error(), "record 1")
	assert.Empty(t, repo.records, "a failed batch must not persist anything")

	batch[1].Type = "INCOME"
	recs, err := svc.BulkImport("user-1", batch)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Len(t, repo.records, 2)
	for _, r := range recs {
		assert.Equal(t, "user-1", r.UserID)
	}
}

func TestBulkDeleteSkipsForeignRecords(t *testing.T) {
	svc, repo := newRecordFixture()

	mine, err := svc.Create("user-1", RecordInput{Amount: amount(10), Type: "EXPENSE", Category: "Food"})
	require.NoError(t, err)
	theirs, err := svc.Create("user-2", RecordInput{Amount: amount(20), Type: "EXPENSE", Category: "Food"})
	require.NoError(t, err)

	count, err := svc.BulkDelete("user-1", []string{mine.ID, theirs.ID, "rec-9999"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// The foreign record survives.
	require.Len(t, repo.records, 1)
	assert.Equal(t, theirs.ID, repo.records[0].ID)
}
