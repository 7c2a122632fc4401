package repository

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getcovered/userapi-go/internal/migrations"
)

func TestSQLDriverName(t *testing.T) {
	name, err := sqlDriverName(DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, "mysql", name)

	name, err = sqlDriverName(DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "pgx", name)

	_, err = sqlDriverName(DriverMemory)
	assert.Error(t, err)

	_, err = sqlDriverName("sqlite")
	assert.Error(t, err)
}

func TestNewDB_UnsupportedDriver(t *testing.T) {
	_, err := NewDB(context.Background(), "oracle", "dsn")
	assert.Error(t, err)
}

func TestMigrate_UsesDialectDirectory(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil, DriverPostgres))
	assert.Equal(t, "postgres", gotDir)

	require.NoError(t, Migrate(context.Background(), nil, DriverMySQL))
	assert.Equal(t, "mysql", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil, DriverMySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestMigrate_RejectsMemoryDriver(t *testing.T) {
	assert.Error(t, Migrate(context.Background(), nil, DriverMemory))
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"mysql", "postgres"} {
		entries, err := fs.ReadDir(migrations.FS, dir)
		require.NoError(t, err)
		require.NotEmpty(t, entries, dir)

		data, err := fs.ReadFile(migrations.FS, dir+"/00001_create_users.sql")
		require.NoError(t, err)
		assert.Contains(t, string(data), "-- +goose Up")
		assert.Contains(t, string(data), "uq_users_email")
	}
}

func TestOpenUserStore_Memory(t *testing.T) {
	store, closeFn, err := OpenUserStore(context.Background(), DriverMemory, "")
	require.NoError(t, err)
	defer closeFn()

	_, ok := store.(*MemoryUserRepository)
	assert.True(t, ok)
}

func TestOpenUserStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenUserStore(context.Background(), "sqlite", "file::memory:")
	assert.Error(t, err)
}

var (
	_ UserStore = (*UserRepository)(nil)
	_ UserStore = (*PostgresUserRepository)(nil)
	_ UserStore = (*MemoryUserRepository)(nil)
)
