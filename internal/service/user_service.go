package service

import (
	"context"

	"social_dashboard/internal/models"
	"social_dashboard/internal/repository"
)

// UserService is a thin pass-through to the user repository, scoped to the
// authenticated id by its callers. The password hash never leaves the model
// in serialized form (json:"-").
type UserService struct {
	userRepo repository.Users
}

func NewUserService(userRepo repository.Users) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(ctx context.Context, id int) (models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id int, fullName, dateOfBirth string) (models.User, error) {
	u, err := s.userRepo.UpdateProfile(ctx, id, fullName, dateOfBirth)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// SetProfilePic records the relative path of an already-stored upload.
// Orphaned files from earlier uploads are not cleaned up.
func (s *UserService) SetProfilePic(ctx context.Context, id int, picPath string) (models.User, error) {
	u, err := s.userRepo.SetProfilePic(ctx, id, picPath)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}
