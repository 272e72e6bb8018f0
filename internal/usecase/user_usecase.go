package usecase

import (
	"context"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
}

func NewUserUseCase(userRepo repository.UserRepository, authProvider AuthProvider) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

// UpdateProfileInput holds the editable profile fields; empty values are left as they are.
type UpdateProfileInput struct {
	Name       string
	Phone      string
	University string
	Avatar     string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.Name); v != "" {
		user.Name = v
	}
	if v := strings.TrimSpace(input.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(input.University); v != "" {
		user.University = v
	}
	if v := strings.TrimSpace(input.Avatar); v != "" {
		user.Avatar = v
	}

	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	return user, nil
}

func (uc *UserUseCase) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return errors.BadRequest("Password must be at least 6 characters", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := uc.authProvider.SignIn(ctx, user.Email, currentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.authProvider.UpdatePassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}
