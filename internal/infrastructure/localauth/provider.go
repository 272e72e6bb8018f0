package localauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

const issuer = "campusmarket"

// Provider is a self-contained identity backend: bcrypt password hashes in the credential store
// and HS256 bearer tokens. It stands in for Firebase Auth in development and tests.
type Provider struct {
	credentials repository.CredentialRepository
	secret      []byte
	expiry      time.Duration
	now         func() time.Time
}

func NewProvider(credentials repository.CredentialRepository, secret string, expiry time.Duration) *Provider {
	return &Provider{
		credentials: credentials,
		secret:      []byte(secret),
		expiry:      expiry,
		now:         time.Now,
	}
}

func (p *Provider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	email = normalizeEmail(email)

	if _, err := p.credentials.GetByEmail(ctx, email); err == nil {
		return "", errors.Conflict("Email already in use")
	} else if !errors.IsNotFound(err) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	uid := uuid.New().String()
	if err := p.credentials.Save(ctx, &entity.Credential{
		UserID:       uid,
		Email:        email,
		PasswordHash: string(hash),
	}); err != nil {
		return "", err
	}

	return uid, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (string, error) {
	credential, err := p.credentials.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	return p.IssueToken(credential.UserID)
}

// IssueToken signs a token for uid without checking any password.
func (p *Provider) IssueToken(uid string) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.expiry)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *Provider) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid token")
	}
	if !claims.VerifyIssuer(issuer, true) {
		return "", fmt.Errorf("invalid token issuer")
	}

	return claims.Subject, nil
}

func (p *Provider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	credential, err := p.credentials.GetByUserID(ctx, uid)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	credential.PasswordHash = string(hash)
	return p.credentials.Save(ctx, credential)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
