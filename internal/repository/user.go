package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/getcovered/userapi-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

const userColumns = `id, email, first_name, last_name, hashed_password, is_active, created_at, updated_at`

// UserRepository handles user persistence operations on MySQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns the stored row. A taken email fails
// with ErrDuplicateEmail; the unique index makes the check and the insert one step.
func (r *UserRepository) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	var user *model.User

	err := withTx(ctx, r.db, func(tx DBTX) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO users (email, first_name, last_name, hashed_password) VALUES (?, ?, ?, ?)`,
			nu.Email, nu.FirstName, nu.LastName, nu.HashedPassword,
		)
		if err != nil {
			if isDuplicateEntryError(err) {
				return ErrDuplicateEmail
			}
			return fmt.Errorf("insert user: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}

		user, err = scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// Update applies patch to the user with the given id, bumps updated_at and
// returns the stored row. An empty patch changes nothing.
func (r *UserRepository) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	if patch.Empty() {
		return r.GetByID(ctx, id)
	}

	var user *model.User

	err := withTx(ctx, r.db, func(tx DBTX) error {
		_, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET first_name = COALESCE(?, first_name),
			     last_name = COALESCE(?, last_name),
			     updated_at = CURRENT_TIMESTAMP(6)
			 WHERE id = ?`,
			nullable(patch.FirstName), nullable(patch.LastName), id,
		)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		user, err = scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.HashedPassword, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return user, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
