package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	users  domain.UserStore
	logger *zerolog.Logger
}

func NewUserService(users domain.UserStore, logger *zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) AddUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user created")
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, update models.UserUpdate, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		existing, err := s.users.GetUserByEmail(ctx, *update.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.Conflict("email %s is already in use", *update.Email)
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAllUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, userID)
}
