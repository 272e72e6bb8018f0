package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

// NewFirestoreCartRepository stores one cart document per user, keyed by the user id.
func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	doc, err := r.client.Collection(cartsCollection).Doc(userID).Get(ctx)
	if err != nil {
		return nil, storeError(err, "Cart", "Failed to get cart")
	}

	var cart entity.Cart
	if err := doc.DataTo(&cart); err != nil {
		return nil, errors.Internal("Failed to parse cart data", err)
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}

	return &cart, nil
}

func (r *firestoreCartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	_, err := r.client.Collection(cartsCollection).Doc(cart.UserID).Set(ctx, cart)
	if err != nil {
		return errors.Internal("Failed to save cart", err)
	}
	return nil
}
