package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/repository"
	"github.com/getcovered/userapi-go/internal/validation"
)

const tokenType = "bearer"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserStore is the persistence the flows need. repository.UserRepository,
// PostgresUserRepository and MemoryUserRepository implement it.
type UserStore interface {
	Create(ctx context.Context, nu model.NewUser) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
}

// PasswordHasher is implemented by crypto.PasswordHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
	VerifyDummy(password string)
}

// TokenIssuer is implemented by crypto.TokenService.
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
	TTL() time.Duration
}

// AuthService handles registration and login.
type AuthService struct {
	store  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store UserStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Register validates the request, stores a new account and returns it
// without credentials.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.UserResponse, error) {
	email, err := validation.Email(req.Email)
	if err != nil {
		return model.UserResponse{}, err
	}
	firstName, err := validation.Name("first_name", req.FirstName)
	if err != nil {
		return model.UserResponse{}, err
	}
	lastName, err := validation.Name("last_name", req.LastName)
	if err != nil {
		return model.UserResponse{}, err
	}
	password, err := validation.Password(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.UserResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.Create(ctx, model.NewUser{
		Email:          email,
		FirstName:      firstName,
		LastName:       lastName,
		HashedPassword: hash,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, fmt.Errorf("creating user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	return user.ToResponse(), nil
}

// Login checks the credentials and issues a bearer token. Unknown emails,
// wrong passwords and disabled accounts all fail with ErrInvalidCredentials
// after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.VerifyDummy(req.Password)
			s.logger.DebugContext(ctx, "login failed", "reason", "unknown email")
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, fmt.Errorf("looking up user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		s.logger.DebugContext(ctx, "login failed", "reason", "wrong password", "user_id", user.ID)
		return model.TokenResponse{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.DebugContext(ctx, "login failed", "reason", "inactive", "user_id", user.ID)
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.Email)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issuing token: %w", err)
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}
