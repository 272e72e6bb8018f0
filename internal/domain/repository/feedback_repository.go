package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	GetByID(ctx context.Context, id string) (*entity.Feedback, error)
	List(ctx context.Context) ([]*entity.Feedback, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Feedback, error)
	// ListRecentPositive returns non-anonymous feedback rated at least minRating, newest first.
	ListRecentPositive(ctx context.Context, minRating, limit int) ([]*entity.Feedback, error)
	Update(ctx context.Context, feedback *entity.Feedback) error
	Delete(ctx context.Context, id string) error
}
