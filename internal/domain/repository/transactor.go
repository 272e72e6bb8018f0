package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

// Transactor runs fn as one atomic unit over products, orders and carts. fn may be invoked more
// than once when the store retries on contention, so it must not have side effects outside tx.
type Transactor interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the view of the store inside a transaction. All reads must happen before the first write.
type Tx interface {
	GetProduct(id string) (*entity.Product, error)
	GetOrder(id string) (*entity.Order, error)

	SetProductStatus(id, status string) error
	CreateOrder(order *entity.Order) error
	UpdateOrder(order *entity.Order) error
	ClearCart(userID string) error
}
