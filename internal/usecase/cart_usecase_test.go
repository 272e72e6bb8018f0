package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

func TestGetCartCreatesEmptyCart(t *testing.T) {
	f := newFixture(t, false)

	cart, err := f.carts.GetCart(context.Background(), "buyer")
	require.NoError(t, err)
	assert.Equal(t, "buyer", cart.UserID)
	assert.Empty(t, cart.Items)
	assert.Contains(t, f.store.carts, "buyer")
}

func TestAddItem(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedUser(t, "seller", "Asha", entity.RoleUser)
	p := f.seedProduct(t, "seller", "Textbook", 200)

	cart, err := f.carts.AddItem(ctx, "buyer", p.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	cart, err = f.carts.AddItem(ctx, "buyer", p.ID, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "one entry per product")
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 200.0, cart.Items[0].Price)
	assert.Equal(t, 400.0, cart.TotalAmount)

	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Textbook", cart.Items[0].Product.Title)
	require.NotNil(t, cart.Items[0].Product.Seller)
	assert.Equal(t, "Asha", cart.Items[0].Product.Seller.Name)
}

func TestAddItemKeepsPriceSnapshot(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p := f.seedProduct(t, "seller", "Textbook", 200)

	_, err := f.carts.AddItem(ctx, "buyer", p.ID, 1)
	require.NoError(t, err)

	f.store.products[p.ID].Price = 999

	cart, err := f.carts.GetCart(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.Items[0].Price)
	assert.Equal(t, 200.0, cart.TotalAmount)
}

func TestAddItemErrors(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	own := f.seedProduct(t, "buyer", "My lamp", 10)
	reserved := f.seedProduct(t, "seller", "Reserved lamp", 10)
	f.store.products[reserved.ID].Status = entity.ProductStatusReserved

	_, err := f.carts.AddItem(ctx, "buyer", "missing", 1)
	assert.True(t, errors.IsNotFound(err))

	_, err = f.carts.AddItem(ctx, "buyer", reserved.ID, 1)
	assert.True(t, errors.Is(err, errors.CodeConflict))

	_, err = f.carts.AddItem(ctx, "buyer", own.ID, 1)
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.carts.AddItem(ctx, "buyer", reserved.ID, 0)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
}

func TestAddOwnProductRejectedInAnyStatus(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	own := f.seedProduct(t, "buyer", "My lamp", 10)

	for _, status := range entity.ProductStatuses {
		f.store.products[own.ID].Status = status
		_, err := f.carts.AddItem(ctx, "buyer", own.ID, 1)
		assert.True(t, errors.Is(err, errors.CodeForbidden) || errors.Is(err, errors.CodeConflict), "status %s: %v", status, err)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p := f.seedProduct(t, "seller", "Textbook", 200)

	_, err := f.carts.UpdateItemQuantity(ctx, "buyer", "item", 2)
	assert.True(t, errors.IsNotFound(err), "no cart yet")

	cart, err := f.carts.AddItem(ctx, "buyer", p.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = f.carts.UpdateItemQuantity(ctx, "buyer", itemID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 600.0, cart.TotalAmount)

	_, err = f.carts.UpdateItemQuantity(ctx, "buyer", itemID, 0)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = f.carts.UpdateItemQuantity(ctx, "buyer", "unknown", 2)
	assert.True(t, errors.IsNotFound(err))
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p := f.seedProduct(t, "seller", "Textbook", 200)

	cart, err := f.carts.AddItem(ctx, "buyer", p.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = f.carts.RemoveItem(ctx, "buyer", itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)

	cart, err = f.carts.RemoveItem(ctx, "buyer", itemID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	p := f.seedProduct(t, "seller", "Textbook", 200)

	_, err := f.carts.ClearCart(ctx, "buyer")
	assert.True(t, errors.IsNotFound(err))

	_, err = f.carts.AddItem(ctx, "buyer", p.ID, 2)
	require.NoError(t, err)

	cart, err := f.carts.ClearCart(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}

func TestSyncCart(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	a := f.seedProduct(t, "seller", "Textbook", 200)
	b := f.seedProduct(t, "seller", "Lamp", 15)
	sold := f.seedProduct(t, "seller", "Bike", 900)
	own := f.seedProduct(t, "buyer", "Mine", 1)
	f.store.products[sold.ID].Status = entity.ProductStatusSold

	_, err := f.carts.AddItem(ctx, "buyer", b.ID, 5)
	require.NoError(t, err)

	cart, err := f.carts.SyncCart(ctx, "buyer", []SyncItemInput{
		{ProductID: a.ID, Quantity: 2},
		{ProductID: "missing", Quantity: 1},
		{ProductID: sold.ID, Quantity: 1},
		{ProductID: own.ID, Quantity: 1},
		{ProductID: a.ID, Quantity: 0},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2, "full overwrite, not a merge")
	assert.Equal(t, a.ID, cart.Items[0].ProductID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, own.ID, cart.Items[1].ProductID, "sync filters on availability only")
	assert.Equal(t, 601.0, cart.TotalAmount)
}

func TestSyncCartWithOnlyMissingProductsIsEmpty(t *testing.T) {
	f := newFixture(t, false)

	cart, err := f.carts.SyncCart(context.Background(), "buyer", []SyncItemInput{{ProductID: "X", Quantity: 2}})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}
