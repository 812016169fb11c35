package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/reelhouse/reelhouse-server/internal/domain"
	domainerrors "github.com/reelhouse/reelhouse-server/internal/errors"
	"github.com/reelhouse/reelhouse-server/internal/id"
	"github.com/reelhouse/reelhouse-server/internal/normalize"
	"github.com/reelhouse/reelhouse-server/internal/store"
	"github.com/reelhouse/reelhouse-server/internal/validation"
)

// UserService creates and reads actors.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// Create registers a user. The username is normalized before validation;
// a taken username or email is a Conflict.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	req.Username = normalize.Username(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate user id")
	}
	user := &domain.User{
		Entity:     domain.Entity{ID: userID},
		Username:   req.Username,
		Email:      req.Email,
		FullName:   strings.TrimSpace(req.FullName),
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, translate(err, "username or email already taken")
	}
	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "user "+userID)
	}
	return user, nil
}
