package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/getcovered/userapi-go/internal/model"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

// PostgresUserRepository handles user persistence operations on PostgreSQL
// through the pgx database/sql driver.
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user and returns the stored row, or ErrDuplicateEmail.
func (r *PostgresUserRepository) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	var user *model.User

	err := withTx(ctx, r.db, func(tx DBTX) error {
		var err error
		user, err = scanUser(tx.QueryRowContext(ctx,
			`INSERT INTO users (email, first_name, last_name, hashed_password)
			 VALUES ($1, $2, $3, $4)
			 RETURNING `+userColumns,
			nu.Email, nu.FirstName, nu.LastName, nu.HashedPassword,
		))
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByEmail retrieves a user by their email address.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByID retrieves a user by their ID.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Update applies patch to the user with the given id and returns the stored row.
func (r *PostgresUserRepository) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	var user *model.User

	err := withTx(ctx, r.db, func(tx DBTX) error {
		var err error
		user, err = scanUser(tx.QueryRowContext(ctx,
			`UPDATE users
			 SET first_name = COALESCE($1, first_name),
			     last_name = COALESCE($2, last_name),
			     updated_at = now()
			 WHERE id = $3
			 RETURNING `+userColumns,
			nullable(patch.FirstName), nullable(patch.LastName), id,
		))
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
