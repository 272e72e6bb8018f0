package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreTransactor struct {
	client *firestore.Client
}

func NewFirestoreTransactor(client *firestore.Client) repository.Transactor {
	return &firestoreTransactor{
		client: client,
	}
}

// RunTransaction runs fn in a Firestore read-write transaction. Firestore retries fn when a
// document it read changes before commit, which serializes concurrent reservations.
func (t *firestoreTransactor) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return t.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{client: t.client, tx: tx})
	})
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) GetProduct(id string) (*entity.Product, error) {
	doc, err := t.tx.Get(t.client.Collection(productsCollection).Doc(id))
	if err != nil {
		return nil, storeError(err, "Product", "Failed to get product")
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	return &product, nil
}

func (t *firestoreTx) GetOrder(id string) (*entity.Order, error) {
	doc, err := t.tx.Get(t.client.Collection(ordersCollection).Doc(id))
	if err != nil {
		return nil, storeError(err, "Order", "Failed to get order")
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}
	return &order, nil
}

func (t *firestoreTx) SetProductStatus(id, status string) error {
	return t.tx.Update(t.client.Collection(productsCollection).Doc(id), []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now()},
	})
}

func (t *firestoreTx) CreateOrder(order *entity.Order) error {
	return t.tx.Create(t.client.Collection(ordersCollection).Doc(order.ID), order)
}

func (t *firestoreTx) UpdateOrder(order *entity.Order) error {
	return t.tx.Set(t.client.Collection(ordersCollection).Doc(order.ID), order)
}

// ClearCart empties the cart document, creating it if the user never had one.
func (t *firestoreTx) ClearCart(userID string) error {
	return t.tx.Set(t.client.Collection(cartsCollection).Doc(userID), map[string]interface{}{
		"userId":      userID,
		"items":       []entity.CartItem{},
		"totalAmount": 0,
		"updatedAt":   time.Now(),
	}, firestore.MergeAll)
}
