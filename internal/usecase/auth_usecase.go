package usecase

import (
	"context"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

const MinPasswordLength = 6

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, authProvider AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	University string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return nil, errors.BadRequest("Please provide your name", nil)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, errors.BadRequest("Password must be at least 6 characters", nil)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use")
	}
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:         uid,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      strings.TrimSpace(input.Phone),
		University: strings.TrimSpace(input.University),
		Role:       entity.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.authProvider.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	logger.Info("Registered user %s", uid)
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	token, err := uc.authProvider.SignIn(ctx, email, password)
	if err != nil {
		logger.Debug("Login failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.authProvider.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
