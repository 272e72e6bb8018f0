package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	policy      Policy
}

func NewCartUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) *CartUseCase {
	return &CartUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

type CartItemView struct {
	entity.CartItem
	Product *entity.ProductSummary `json:"product"`
}

type CartView struct {
	UserID      string         `json:"user_id"`
	Items       []CartItemView `json:"items"`
	TotalAmount float64        `json:"total_amount"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SyncItemInput struct {
	ProductID string
	Quantity  int
}

// GetCart returns the user's cart, creating an empty one on first access.
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

// AddItem appends productID with a price snapshot, or bumps the quantity of the existing entry.
func (uc *CartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.IsAvailable() {
		return nil, errors.Conflict("Product is not available")
	}

	if err := uc.policy.Authorize(Principal{UserID: userID}, product, ActionAddToCart); err != nil {
		return nil, err
	}

	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if i := cart.ItemIndexByProduct(productID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, newCartItem(product, quantity))
	}

	if err := uc.save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) (*CartView, error) {
	if quantity < 1 {
		return nil, errors.BadRequest("Quantity must be at least 1", nil)
	}

	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.ItemIndex(itemID)
	if i < 0 {
		return nil, errors.NotFound("Item in cart", nil)
	}
	cart.Items[i].Quantity = quantity

	if err := uc.save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

// RemoveItem drops itemID from the cart; an unknown item is not an error.
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) (*CartView, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := uc.save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	if err := uc.save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

// SyncCart overwrites the cart with items, keeping only products that exist and are Available.
// Anything else is dropped without error.
func (uc *CartUseCase) SyncCart(ctx context.Context, userID string, items []SyncItemInput) (*CartView, error) {
	cart, err := uc.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cart.Clear()
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok || !product.IsAvailable() {
			continue
		}

		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}

		if i := cart.ItemIndexByProduct(product.ID); i >= 0 {
			cart.Items[i].Quantity += quantity
			continue
		}
		cart.Items = append(cart.Items, newCartItem(product, quantity))
	}

	if err := uc.save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.view(ctx, cart), nil
}

func (uc *CartUseCase) getOrCreate(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	cart = entity.NewCart(userID)
	if err := uc.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartUseCase) save(ctx context.Context, cart *entity.Cart) error {
	cart.Recalculate()
	cart.UpdatedAt = time.Now()
	return uc.cartRepo.Save(ctx, cart)
}

func newCartItem(product *entity.Product, quantity int) entity.CartItem {
	return entity.CartItem{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
		AddedAt:   time.Now(),
	}
}

// view joins each item with the current product and its seller. Items whose product has since
// been deleted are shown with a nil product.
func (uc *CartUseCase) view(ctx context.Context, cart *entity.Cart) *CartView {
	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load products for cart of %s: %v", cart.UserID, err)
	}

	sellerIDs := make([]string, 0, len(products))
	for _, p := range products {
		sellerIDs = append(sellerIDs, p.SellerID)
	}
	sellers, err := uc.userRepo.GetByIDs(ctx, sellerIDs)
	if err != nil {
		logger.Warn("Failed to load sellers for cart of %s: %v", cart.UserID, err)
	}

	items := make([]CartItemView, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemView{CartItem: item}
		if p, ok := products[item.ProductID]; ok {
			summary := p.Summary()
			if seller := sellers[p.SellerID]; seller != nil {
				summary.Seller = seller.Summary()
			}
			items[i].Product = summary
		}
	}

	return &CartView{
		UserID:      cart.UserID,
		Items:       items,
		TotalAmount: cart.TotalAmount,
		UpdatedAt:   cart.UpdatedAt,
	}
}
