package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

// PartnerLinkRepository stores one row per relationship with the user pair in
// normalized (low, high) order, enforced by a unique index. Both parties read
// the same row, so the statuses seen by either side cannot diverge.
type PartnerLinkRepository struct {
	pool *pgxpool.Pool
}

func NewPartnerLinkRepository(pool *pgxpool.Pool) *PartnerLinkRepository {
	return &PartnerLinkRepository{pool: pool}
}

func (r *PartnerLinkRepository) Get(userA, userB string) (*entity.PartnerLink, error) {
	low, high := entity.NormalizePair(userA, userB)
	l := &entity.PartnerLink{}
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, user_low_id, user_high_id, status, initiated_by, created_at, updated_at
		FROM partner_links
		WHERE user_low_id = $1 AND user_high_id = $2
	`, low, high)
	if err := row.Scan(&l.ID, &l.UserLowID, &l.UserHighID, &l.Status,
		&l.InitiatedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return l, nil
}

func (r *PartnerLinkRepository) Create(l *entity.PartnerLink) error {
	low, high := entity.NormalizePair(l.UserLowID, l.UserHighID)
	l.UserLowID, l.UserHighID = low, high
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO partner_links (user_low_id, user_high_id, status, initiated_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, l.UserLowID, l.UserHighID, l.Status, l.InitiatedBy)
	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *PartnerLinkRepository) UpdateStatus(userA, userB string, status entity.PartnerStatus) error {
	low, high := entity.NormalizePair(userA, userB)
	res, err := r.pool.Exec(context.Background(), `
		UPDATE partner_links
		SET status = $1, updated_at = $2
		WHERE user_low_id = $3 AND user_high_id = $4
	`, status, time.Now(), low, high)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete is idempotent: removing an absent link is not an error.
func (r *PartnerLinkRepository) Delete(userA, userB string) error {
	low, high := entity.NormalizePair(userA, userB)
	_, err := r.pool.Exec(context.Background(), `
		DELETE FROM partner_links
		WHERE user_low_id = $1 AND user_high_id = $2
	`, low, high)
	return err
}

func (r *PartnerLinkRepository) ListViews(userID string) ([]entity.PartnerView, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT u.id, u.name, u.email, l.status, l.initiated_by
		FROM partner_links l
		JOIN users u ON u.id = CASE WHEN l.user_low_id = $1 THEN l.user_high_id ELSE l.user_low_id END
		WHERE l.user_low_id = $1 OR l.user_high_id = $1
		ORDER BY l.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []entity.PartnerView{}
	for rows.Next() {
		var v entity.PartnerView
		if err := rows.Scan(&v.CounterpartyID, &v.CounterpartyName,
			&v.CounterpartyEmail, &v.Status, &v.InitiatedBy); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PartnerLinkRepository) AcceptedPartnerIDs(userID string) ([]string, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT CASE WHEN user_low_id = $1 THEN user_high_id ELSE user_low_id END
		FROM partner_links
		WHERE (user_low_id = $1 OR user_high_id = $1) AND status = $2
	`, userID, entity.PartnerAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

var _ repository.PartnerLinkRepository = (*PartnerLinkRepository)(nil)
