package service

import (
	"context"

	"grain_dryer/internal/models"
	"grain_dryer/internal/repository"
)

// ProfileService reads and updates the signed-in user's profile.
type ProfileService struct {
	authRepo repository.Authorization
}

func NewProfileService(repo repository.Authorization) *ProfileService {
	return &ProfileService{authRepo: repo}
}

// Get loads the profile for userID.
func (s *ProfileService) Get(ctx context.Context, userID int) (models.User, error) {
	u, err := s.authRepo.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}
	return *u, nil
}

// Update applies a partial profile update: empty fields keep their
// current value.
func (s *ProfileService) Update(ctx context.Context, userID int, p ProfileParams) (models.User, error) {
	u, err := s.authRepo.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUserNotFound
	}

	if p.Username != "" {
		u.Username = p.Username
	}
	if p.Fullname != "" {
		u.Fullname = p.Fullname
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.Avatar != "" {
		u.Avatar = p.Avatar
	}

	if err := s.authRepo.UpdateProfile(ctx, *u); err != nil {
		return models.User{}, err
	}
	return *u, nil
}
