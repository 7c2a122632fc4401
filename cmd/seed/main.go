// Command seed creates demo accounts, or a single account given on the
// command line, through the same registration flow the API uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/getcovered/userapi-go/internal/config"
	"github.com/getcovered/userapi-go/internal/crypto"
	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/repository"
	"github.com/getcovered/userapi-go/internal/service"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type registrar interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error)
}

func main() {
	email := flag.String("email", "", "create a single account with this email instead of the demo set")
	first := flag.String("first", "", "first name for -email")
	last := flag.String("last", "", "last name for -email")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	ctx := context.Background()
	store, closeStore, err := repository.OpenUserStore(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database setup failed", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	auth := service.NewAuthService(store,
		crypto.NewPasswordHasher(crypto.DefaultHashParams()),
		crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry),
		logger)

	users := demoUsers
	if *email != "" {
		password, err := promptPassword(os.Stdout, int(os.Stdin.Fd()))
		if err != nil {
			logger.Error("reading password", "error", err)
			os.Exit(1)
		}
		users = []model.RegisterRequest{{Email: *email, FirstName: *first, LastName: *last, Password: password}}
	}

	created, skipped, err := seedUsers(ctx, auth, users, logger)
	if err != nil {
		logger.Error("seeding failed", "created", created, "error", err)
		os.Exit(1)
	}
	logger.Info("seeding finished", "created", created, "skipped", skipped)
}

// seedUsers registers each user. Accounts that already exist are skipped, so
// running it twice is harmless.
func seedUsers(ctx context.Context, auth registrar, users []model.RegisterRequest, logger *slog.Logger) (created, skipped int, err error) {
	for _, u := range users {
		_, err := auth.Register(ctx, u)
		switch {
		case err == nil:
			created++
		case errors.Is(err, service.ErrEmailTaken):
			skipped++
			logger.Info("user exists, skipping", "email", u.Email)
		default:
			return created, skipped, fmt.Errorf("seeding %s: %w", u.Email, err)
		}
	}
	return created, skipped, nil
}

func promptPassword(w io.Writer, fd int) (string, error) {
	fmt.Fprint(w, "Password: ")
	raw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	password := strings.TrimRight(string(raw), "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
