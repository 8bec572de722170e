package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-server/internal/logger"
	"github.com/taskhub/taskhub-server/internal/model"
	"github.com/taskhub/taskhub-server/internal/validate"
)

// UserService owns user records: registration, credential checks and
// profile mutation. Plaintext passwords are hashed on the way in and
// discarded; they are never stored or logged.
type UserService struct {
	store  model.UserStore
	hasher model.PasswordHasher
	logger *logger.Logger
}

func NewUserService(store model.UserStore, hasher model.PasswordHasher, logger *logger.Logger) *UserService {
	return &UserService{store: store, hasher: hasher, logger: logger}
}

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// UpdateParams carries a partial profile update. Nil fields are left
// untouched.
type UpdateParams struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// Register validates the input, hashes the password and stores a new
// user. A duplicate email surfaces as model.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.User{}, model.NewValidationError("Name is required")
	}

	email := validate.NormalizeEmail(params.Email)
	if err := validate.Email(email); err != nil {
		return model.User{}, err
	}
	if err := validate.Password(params.Password); err != nil {
		return model.User{}, err
	}
	if err := validate.Age(params.Age); err != nil {
		return model.User{}, err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Age:          params.Age,
		Sessions:     []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			s.logger.Info("User service: registration rejected, email taken", "email", email)
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered", "user_id", created.ID)
	return created, nil
}

// Authenticate verifies credentials. Unknown email and wrong password
// both return model.ErrInvalidCredentials so the two cases are not
// distinguishable by the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	user, err := s.store.GetByEmail(ctx, validate.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug("User service: login for unknown email")
			return model.User{}, model.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug("User service: login with wrong password", "user_id", user.ID)
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID fetches a user record.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// Update applies a partial profile update. A new password is validated
// and re-hashed, never stored raw.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return model.User{}, model.NewValidationError("Name is required")
		}
		user.Name = name
	}
	if params.Email != nil {
		email := validate.NormalizeEmail(*params.Email)
		if err := validate.Email(email); err != nil {
			return model.User{}, err
		}
		user.Email = email
	}
	if params.Password != nil {
		if err := validate.Password(*params.Password); err != nil {
			return model.User{}, err
		}
		hash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if params.Age != nil {
		if err := validate.Age(*params.Age); err != nil {
			return model.User{}, err
		}
		user.Age = *params.Age
	}

	user.UpdatedAt = time.Now()

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) || errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: user updated", "user_id", updated.ID)
	return updated, nil
}

// Delete removes the user record. Deleting the row drops the session
// set with it, so every outstanding token dies at once.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted", "user_id", id)
	return nil
}
