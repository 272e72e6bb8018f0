package entity

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         string `json:"id" firestore:"id"`
	Name       string `json:"name" firestore:"name"`
	Email      string `json:"email" firestore:"email"`
	Phone      string `json:"phone,omitempty" firestore:"phone,omitempty"`
	University string `json:"university,omitempty" firestore:"university,omitempty"`
	Avatar     string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Role       string `json:"role" firestore:"role"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the public projection of a user joined into other resources.
type UserSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	University string `json:"university,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		University: u.University,
		Avatar:     u.Avatar,
	}
}

// Credential is the password record kept by the local auth provider.
type Credential struct {
	UserID       string    `firestore:"userId"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	UpdatedAt    time.Time `firestore:"updatedAt"`
}
