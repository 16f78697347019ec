package service

import (
	"context"
	"errors"

	"github.com/communityhub/waitlist-service/internal/models"
	"github.com/communityhub/waitlist-service/internal/repository"
	"gorm.io/gorm"
)

type UserService interface {
	RegisterUser(ctx context.Context, id, name, email string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// RegisterUser creates the user record if it does not exist yet. Identity
// comes from the caller (the auth layer upstream owns credentials), so an
// existing record is returned as-is.
func (s *userService) RegisterUser(ctx context.Context, id, name, email string) (*models.User, error) {
	existing, err := s.userRepo.FindByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{ID: id, Name: name, Email: email}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
