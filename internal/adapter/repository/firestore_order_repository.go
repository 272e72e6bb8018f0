package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

// NewFirestoreOrderRepository is read-only; orders are written through the transactor.
func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError(err, "Order", "Failed to get order")
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, "buyerId", buyerID)
}

func (r *firestoreOrderRepository) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	return r.listWhere(ctx, "sellerId", sellerID)
}

func (r *firestoreOrderRepository) listWhere(ctx context.Context, field, value string) ([]*entity.Order, error) {
	docs, err := r.client.Collection(ordersCollection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list orders", err)
	}

	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, nil
}
