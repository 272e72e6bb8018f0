package service

import (
	"context"

	"campusmarket/internal/domain/entity"
)

// FeedbackCache holds the public testimonial lists keyed by limit. Get reports a miss with ok=false.
type FeedbackCache interface {
	GetRecent(ctx context.Context, limit int) (items []entity.Testimonial, ok bool, err error)
	SetRecent(ctx context.Context, limit int, items []entity.Testimonial) error
	InvalidateRecent(ctx context.Context) error
}

type noopFeedbackCache struct{}

func NewNoopFeedbackCache() FeedbackCache {
	return noopFeedbackCache{}
}

func (noopFeedbackCache) GetRecent(ctx context.Context, limit int) ([]entity.Testimonial, bool, error) {
	return nil, false, nil
}

func (noopFeedbackCache) SetRecent(ctx context.Context, limit int, items []entity.Testimonial) error {
	return nil
}

func (noopFeedbackCache) InvalidateRecent(ctx context.Context) error { return nil }
