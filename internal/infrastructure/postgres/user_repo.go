package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eduai-labs/eduai-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, full_name, password_hash, is_email_verified,
	verification_code, verification_code_expires,
	reset_password_token, reset_password_expires,
	created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash, is_email_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		user.Email, user.FullName, user.PasswordHash, user.IsEmailVerified,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// StoreCode sets the code/expiry pair for the purpose in one UPDATE so the
// two fields can never diverge.
func (r *UserRepository) StoreCode(ctx context.Context, userID string, purpose domain.Purpose, code string, expiresAt time.Time) error {
	query := `UPDATE users
		SET verification_code = $2, verification_code_expires = $3, updated_at = NOW()
		WHERE id = $1`
	if purpose == domain.PurposePasswordReset {
		query = `UPDATE users
			SET reset_password_token = $2, reset_password_expires = $3, updated_at = NOW()
			WHERE id = $1`
	}

	tag, err := r.pool.Exec(ctx, query, userID, code, expiresAt)
	if err != nil {
		return fmt.Errorf("store %s code: %w", purpose, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_email_verified = TRUE,
		    verification_code = NULL,
		    verification_code_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("mark email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2,
		    reset_password_token = NULL,
		    reset_password_expires = NULL,
		    updated_at = NOW()
		WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateFullName(ctx context.Context, userID, fullName string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET full_name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, fullName,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.IsEmailVerified,
		&u.VerificationCode, &u.VerificationCodeExpires,
		&u.ResetPasswordToken, &u.ResetPasswordExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
