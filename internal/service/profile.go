package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getcovered/userapi-go/internal/model"
	"github.com/getcovered/userapi-go/internal/repository"
	"github.com/getcovered/userapi-go/internal/validation"
)

var (
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrUserNotFound    = errors.New("user not found")
	errAccountDisabled = errors.New("account disabled")
)

// TokenVerifier is implemented by crypto.TokenService.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// ProfileService reads and updates the profile of the token's owner.
type ProfileService struct {
	store  UserStore
	tokens TokenVerifier
	logger *slog.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store UserStore, tokens TokenVerifier, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// GetProfile returns the profile of the user the token was issued to.
func (s *ProfileService) GetProfile(ctx context.Context, token string) (model.UserResponse, error) {
	user, err := s.currentUser(ctx, token)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.ToResponse(), nil
}

// UpdateProfile changes the provided name fields of the token's owner. The
// email is never updatable.
func (s *ProfileService) UpdateProfile(ctx context.Context, token string, req model.UpdateProfileRequest) (model.UserResponse, error) {
	user, err := s.currentUser(ctx, token)
	if err != nil {
		return model.UserResponse{}, err
	}

	var patch model.UserPatch
	if req.FirstName != nil {
		name, err := validation.Name("first_name", *req.FirstName)
		if err != nil {
			return model.UserResponse{}, err
		}
		patch.FirstName = &name
	}
	if req.LastName != nil {
		name, err := validation.Name("last_name", *req.LastName)
		if err != nil {
			return model.UserResponse{}, err
		}
		patch.LastName = &name
	}

	updated, err := s.store.Update(ctx, user.ID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, fmt.Errorf("updating user: %w", err)
	}

	s.logger.InfoContext(ctx, "profile updated", "user_id", updated.ID)

	return updated.ToResponse(), nil
}

// currentUser resolves the token to a stored, active user.
func (s *ProfileService) currentUser(ctx context.Context, token string) (*model.User, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, errAccountDisabled)
	}

	return user, nil
}
