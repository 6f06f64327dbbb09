package service

import (
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListUsers(page, limit int, search string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, search)
}

// SetDisabled flips the account kill switch. A disabled student can no
// longer log in; already-issued tokens are not revoked.
func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	if _, err := s.GetUser(userID); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(userID, disabled)
}
