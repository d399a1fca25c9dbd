package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/pouch-server/internal/errs"
	"github.com/carson-networks/pouch-server/internal/storage"
	"github.com/carson-networks/pouch-server/internal/storage/user"
)

// CreateUserInput carries the profile fields for a new user. Credential
// handling lives outside this core.
type CreateUserInput struct {
	Email  string
	Name   string
	Locale string
}

// UserService manages users. User records carry no derived balances, so both
// reads and writes go straight to storage instead of through the operator.
type UserService struct {
	store *storage.Storage
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Storage) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a user on the user shard. A duplicate email surfaces
// as a constraint error.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*user.User, error) {
	if input.Email == "" {
		return nil, &errs.ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if input.Name == "" {
		return nil, &errs.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	locale := input.Locale
	if locale == "" {
		locale = "en"
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	row := user.User{
		ID:        id,
		Email:     input.Email,
		Name:      input.Name,
		Locale:    locale,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Users.Create(ctx, &row); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.store.Users.FindByID(ctx, id)
}
