package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	// List returns one page of products matching filter, plus the total match count.
	List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error)
	ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the counter atomically and returns the updated product.
	IncrementViews(ctx context.Context, id string) (*entity.Product, error)
}
