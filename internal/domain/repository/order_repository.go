package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Order, error)
}
