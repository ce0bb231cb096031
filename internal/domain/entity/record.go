package entity

import "time"

// RecordType distinguishes income from expense entries.
type RecordType string

const (
	TypeIncome  RecordType = "INCOME"
	TypeExpense RecordType = "EXPENSE"
)

// Valid reports whether t is one of the known record types.
func (t RecordType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Record is one income or expense ledger entry owned by a user.
type Record struct {
	ID          string
	UserID      string
	UserName    string // resolved for display on joint views, not persisted
	Amount      float64
	Type        RecordType
	Category    string
	Description string
	Spender     string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
