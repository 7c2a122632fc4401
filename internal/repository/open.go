package repository

import (
	"context"
	"fmt"

	"github.com/getcovered/userapi-go/internal/model"
)

// UserStore is implemented by every user repository in this package.
type UserStore interface {
	Create(ctx context.Context, nu model.NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
}

// OpenUserStore connects to the configured database, applies migrations and
// returns the matching repository with a function that releases it.
func OpenUserStore(ctx context.Context, driver, dsn string) (UserStore, func() error, error) {
	if driver == DriverMemory {
		return NewMemoryUserRepository(), func() error { return nil }, nil
	}

	db, err := NewDB(ctx, driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(ctx, db, driver); err != nil {
		db.Close()
		return nil, nil, err
	}

	switch driver {
	case DriverPostgres:
		return NewPostgresUserRepository(db), db.Close, nil
	case DriverMySQL:
		return NewUserRepository(db), db.Close, nil
	default:
		db.Close()
		return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
