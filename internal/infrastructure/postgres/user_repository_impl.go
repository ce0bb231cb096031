package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
	"github.com/ourwallet/ourwallet/internal/domain/repository"
)

const uniqueViolation = "23505"

func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password, name, is_verified, verification_token,
	reset_password_token, reset_password_expires, spenders, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.IsVerified,
		&u.VerificationToken, &u.ResetPasswordToken, &u.ResetPasswordExpires,
		&u.Spenders, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	if len(u.Spenders) == 0 {
		u.Spenders = []string{entity.DefaultSpender}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password, name, is_verified, verification_token, spenders)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.IsVerified, u.VerificationToken, u.Spenders)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE lower(email) = lower($1)
	`, email))
}

func (r *UserRepository) GetByVerificationToken(token string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE verification_token = $1 AND verification_token <> ''
	`, token))
}

func (r *UserRepository) GetByResetToken(digest string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+`
		FROM users
		WHERE reset_password_token = $1 AND reset_password_token <> ''
	`, digest))
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password = $2, name = $3, is_verified = $4,
		    verification_token = $5, reset_password_token = $6,
		    reset_password_expires = $7, spenders = $8, updated_at = $9
		WHERE id = $10
	`, u.Email, u.Password, u.Name, u.IsVerified, u.VerificationToken,
		u.ResetPasswordToken, u.ResetPasswordExpires, u.Spenders, u.UpdatedAt, u.ID)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
