package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError(err, "User", "Failed to get user")
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.User, error) {
	docs, err := getAll(ctx, r.client, usersCollection, ids)
	if err != nil {
		return nil, errors.Internal("Failed to get users", err)
	}

	users := make(map[string]*entity.User, len(docs))
	for _, doc := range docs {
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users[doc.Ref.ID] = &user
	}

	return users, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	iter := r.client.Collection(usersCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

// Update merges the editable profile fields; empty strings never overwrite stored values.
func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"name":       user.Name,
		"phone":      user.Phone,
		"university": user.University,
		"avatar":     user.Avatar,
		"role":       user.Role,
	}

	clean := map[string]interface{}{"updatedAt": time.Now()}
	for key, value := range updateData {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		clean[key] = value
	}

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, clean, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}

type firestoreCredentialRepository struct {
	client *firestore.Client
}

func NewFirestoreCredentialRepository(client *firestore.Client) repository.CredentialRepository {
	return &firestoreCredentialRepository{
		client: client,
	}
}

func (r *firestoreCredentialRepository) Save(ctx context.Context, credential *entity.Credential) error {
	credential.UpdatedAt = time.Now()
	_, err := r.client.Collection(credentialsCollection).Doc(credential.UserID).Set(ctx, credential)
	if err != nil {
		return errors.Internal("Failed to save credential", err)
	}
	return nil
}

func (r *firestoreCredentialRepository) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	iter := r.client.Collection(credentialsCollection).Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Credential", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to get credential", err)
	}

	var credential entity.Credential
	if err := doc.DataTo(&credential); err != nil {
		return nil, errors.Internal("Failed to parse credential data", err)
	}
	return &credential, nil
}

func (r *firestoreCredentialRepository) GetByUserID(ctx context.Context, userID string) (*entity.Credential, error) {
	doc, err := r.client.Collection(credentialsCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, storeError(err, "Credential", "Failed to get credential")
	}

	var credential entity.Credential
	if err := doc.DataTo(&credential); err != nil {
		return nil, errors.Internal("Failed to parse credential data", err)
	}
	return &credential, nil
}
