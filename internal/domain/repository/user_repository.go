package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// CredentialRepository stores password hashes for the local auth provider.
type CredentialRepository interface {
	Save(ctx context.Context, credential *entity.Credential) error
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Credential, error)
}
