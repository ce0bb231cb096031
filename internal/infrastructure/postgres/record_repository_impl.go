package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// sortColumns whitelists client-supplied sort keys.
var sortColumns = map[string]string{
	"date":       "r.date",
	"amount":     "r.amount",
	"category":   "r.category",
	"spender":    "r.spender",
	"created_at": "r.created_at",
}

const recordColumns = `r.id, r.user_id, u.name, r.amount, r.type, r.category,
	r.description, r.spender, r.date, r.created_at, r.updated_at`

func scanRecord(rows pgx.Rows) (entity.Record, error) {
	var rec entity.Record
	err := rows.Scan(&rec.ID, &rec.UserID, &rec.UserName, &rec.Amount, &rec.Type,
		&rec.Category, &rec.Description, &rec.Spender, &rec.Date,
		&rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func (r *RecordRepository) Create(rec *entity.Record) error {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO records (user_id, amount, type, category, description, spender, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, rec.UserID, rec.Amount, rec.Type, rec.Category, rec.Description, rec.Spender, rec.Date)
	if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

// CreateMany inserts the whole batch inside one transaction so a failing row
// rolls back every other insert.
func (r *RecordRepository) CreateMany(recs []*entity.Record) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, rec := range recs {
		row := tx.QueryRow(ctx, `
			INSERT INTO records (user_id, amount, type, category, description, spender, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, rec.UserID, rec.Amount, rec.Type, rec.Category, rec.Description, rec.Spender, rec.Date)
		if err := row.Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return mapPgError(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *RecordRepository) GetByID(id string) (*entity.Record, error) {
	rec := &entity.Record{}
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+recordColumns+`
		FROM records r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`, id)
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.UserName, &rec.Amount, &rec.Type,
		&rec.Category, &rec.Description, &rec.Spender, &rec.Date,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return rec, nil
}

func (r *RecordRepository) Delete(id string) error {
	res, err := r.pool.Exec(context.Background(), `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) DeleteOwned(ids []string, ownerID string) (int64, error) {
	res, err := r.pool.Exec(context.Background(), `
		DELETE FROM records
		WHERE id = ANY($1::uuid[]) AND user_id = $2
	`, ids, ownerID)
	if err != nil {
		return 0, mapPgError(err)
	}
	return res.RowsAffected(), nil
}

func (r *RecordRepository) List(f repository.RecordFilter) ([]entity.Record, int64, error) {
	ctx := context.Background()

	where := []string{"r.user_id = ANY($1::uuid[])"}
	args := []any{f.OwnerIDs}

	if f.Type != "" {
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("r.type = $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("r.category = $%d", len(args)))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where = append(where, fmt.Sprintf("r.date >= $%d", len(args)))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where = append(where, fmt.Sprintf("r.date <= $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx,
		"SELECT count(*) FROM records r WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "r.date"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	q := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM records r
		JOIN users u ON u.id = r.user_id
		WHERE %s
		ORDER BY %s %s, r.id
		LIMIT $%d OFFSET $%d
	`, cond, col, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recs := []entity.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		recs = append(recs, rec)
	}
	return recs, total, rows.Err()
}

func (r *RecordRepository) AllByOwners(ownerIDs []string) ([]entity.Record, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+recordColumns+`
		FROM records r
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = ANY($1::uuid[])
		ORDER BY r.date DESC, r.id
	`, ownerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []entity.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

var _ repository.RecordRepository = (*RecordRepository)(nil)
