package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/domain/service"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/metrics"
)

type OrderUseCase struct {
	orderRepo         repository.OrderRepository
	productRepo       repository.ProductRepository
	userRepo          repository.UserRepository
	transactor        repository.Transactor
	events            service.EventPublisher
	policy            Policy
	strictTransitions bool
}

// NewOrderUseCase wires the order lifecycle. With strictTransitions the Pending/Confirmed state
// table is enforced on status updates; otherwise any valid status is accepted.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	transactor repository.Transactor,
	events service.EventPublisher,
	strictTransitions bool,
) *OrderUseCase {
	if events == nil {
		events = service.NewNoopPublisher()
	}
	return &OrderUseCase{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		userRepo:          userRepo,
		transactor:        transactor,
		events:            events,
		strictTransitions: strictTransitions,
	}
}

type CheckoutItem struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	Items          []CheckoutItem
	MeetingDetails entity.MeetingDetails
	PaymentMethod  string
}

// OrderView is an order joined with both parties and the product.
type OrderView struct {
	*entity.Order
	Buyer   *entity.UserSummary    `json:"buyer,omitempty"`
	Seller  *entity.UserSummary    `json:"seller,omitempty"`
	Product *entity.ProductSummary `json:"product,omitempty"`
}

// Checkout turns items into one Pending order per product, reserves each product and empties the
// buyer's cart, all in a single transaction. Products that no longer exist are skipped; the first
// product that is not Available aborts the checkout and nothing is written.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID string, input CheckoutInput) ([]*OrderView, error) {
	if len(input.Items) == 0 {
		return nil, errors.BadRequest("No items in order", nil)
	}

	if err := validateMeetingDetails(&input.MeetingDetails); err != nil {
		return nil, err
	}

	if input.PaymentMethod == "" {
		input.PaymentMethod = entity.PaymentCashOnDelivery
	}
	if !entity.IsValidPaymentMethod(input.PaymentMethod) {
		return nil, errors.BadRequest("Invalid payment method", nil)
	}

	items := mergeCheckoutItems(input.Items)

	var created []*entity.Order
	err := uc.transactor.RunTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		created = nil

		products := make([]*entity.Product, len(items))
		for i, item := range items {
			product, err := tx.GetProduct(item.ProductID)
			if errors.IsNotFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			products[i] = product
		}

		for _, product := range products {
			if product == nil {
				continue
			}
			if !product.IsAvailable() {
				return errors.Conflict(fmt.Sprintf("Product %s is not available", product.Title))
			}
		}

		now := time.Now()
		for i, product := range products {
			if product == nil {
				continue
			}

			order := &entity.Order{
				ID:             uuid.New().String(),
				BuyerID:        buyerID,
				SellerID:       product.SellerID,
				ProductID:      product.ID,
				Quantity:       items[i].Quantity,
				TotalAmount:    entity.LineTotal(product.Price, items[i].Quantity).InexactFloat64(),
				MeetingDetails: input.MeetingDetails,
				Status:         entity.OrderStatusPending,
				PaymentMethod:  input.PaymentMethod,
				CreatedAt:      now,
				UpdatedAt:      now,
			}

			if err := tx.CreateOrder(order); err != nil {
				return err
			}
			if err := tx.SetProductStatus(product.ID, entity.ProductStatusReserved); err != nil {
				return err
			}
			created = append(created, order)
		}

		return tx.ClearCart(buyerID)
	})
	if err != nil {
		if errors.Is(err, errors.CodeConflict) {
			metrics.RecordCheckoutConflict()
		}
		return nil, err
	}

	metrics.RecordOrdersCreated(len(created))
	for _, order := range created {
		uc.publish(ctx, service.EventOrderCreated, order, buyerID)
	}

	logger.Info("Buyer %s checked out %d orders", buyerID, len(created))
	return uc.views(ctx, created), nil
}

// UpdateStatus is the seller's control over an order. Completed marks the product Sold and
// Cancelled releases it.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID, requesterID, status string) (*OrderView, error) {
	if !entity.IsValidOrderStatus(status) {
		return nil, errors.BadRequest("Invalid status", nil)
	}

	return uc.transition(ctx, orderID, Principal{UserID: requesterID}, ActionUpdateOrderStatus, status, func(order *entity.Order) error {
		if uc.strictTransitions && !entity.CanTransition(order.Status, status) {
			return errors.Conflict(fmt.Sprintf("Cannot change order status from %s to %s", order.Status, status))
		}
		return nil
	})
}

// Cancel lets either party call off an order that has not been completed.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID, requesterID string) (*OrderView, error) {
	return uc.transition(ctx, orderID, Principal{UserID: requesterID}, ActionCancelOrder, entity.OrderStatusCancelled, func(order *entity.Order) error {
		if order.Status == entity.OrderStatusCompleted {
			return errors.Conflict("Cannot cancel completed order")
		}
		if uc.strictTransitions && order.Status == entity.OrderStatusCancelled {
			return errors.Conflict("Order is already cancelled")
		}
		return nil
	})
}

func (uc *OrderUseCase) ListForBuyer(ctx context.Context, buyerID string) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListByBuyerID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return uc.views(ctx, orders), nil
}

func (uc *OrderUseCase) ListForSeller(ctx context.Context, sellerID string) ([]*OrderView, error) {
	orders, err := uc.orderRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(orders)
	return uc.views(ctx, orders), nil
}

func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID, requesterID string) (*OrderView, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.Authorize(Principal{UserID: requesterID}, order, ActionViewOrder); err != nil {
		return nil, err
	}

	return uc.views(ctx, []*entity.Order{order})[0], nil
}

// transition moves an order to status inside a transaction and keeps the product in step.
// A product deleted since the order was placed is left alone.
func (uc *OrderUseCase) transition(
	ctx context.Context,
	orderID string,
	principal Principal,
	action Action,
	status string,
	guard func(order *entity.Order) error,
) (*OrderView, error) {
	var updated *entity.Order
	err := uc.transactor.RunTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		order, err := tx.GetOrder(orderID)
		if err != nil {
			return err
		}

		if err := uc.policy.Authorize(principal, order, action); err != nil {
			return err
		}
		if err := guard(order); err != nil {
			return err
		}

		product, err := tx.GetProduct(order.ProductID)
		if err != nil && !errors.IsNotFound(err) {
			return err
		}

		now := time.Now()
		order.Status = status
		order.UpdatedAt = now

		productStatus := ""
		switch status {
		case entity.OrderStatusCompleted:
			order.CompletedAt = &now
			productStatus = entity.ProductStatusSold
		case entity.OrderStatusCancelled:
			order.CancelledAt = &now
			productStatus = entity.ProductStatusAvailable
		}

		if err := tx.UpdateOrder(order); err != nil {
			return err
		}
		if product != nil && productStatus != "" {
			if err := tx.SetProductStatus(product.ID, productStatus); err != nil {
				return err
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordOrderTransition(status)
	uc.publish(ctx, service.EventOrderStatusChanged, updated, principal.UserID)

	return uc.views(ctx, []*entity.Order{updated})[0], nil
}

func (uc *OrderUseCase) publish(ctx context.Context, eventType string, order *entity.Order, actorID string) {
	event := service.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		ProductID:  order.ProductID,
		BuyerID:    order.BuyerID,
		SellerID:   order.SellerID,
		Status:     order.Status,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if err := uc.events.PublishOrderEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish %s for order %s: %v", eventType, order.ID, err)
	}
}

func (uc *OrderUseCase) views(ctx context.Context, orders []*entity.Order) []*OrderView {
	userIDs := make([]string, 0, len(orders)*2)
	productIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		userIDs = append(userIDs, o.BuyerID, o.SellerID)
		productIDs = append(productIDs, o.ProductID)
	}

	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		logger.Warn("Failed to load parties for %d orders: %v", len(orders), err)
	}
	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		logger.Warn("Failed to load products for %d orders: %v", len(orders), err)
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = &OrderView{
			Order:   o,
			Buyer:   users[o.BuyerID].Summary(),
			Seller:  users[o.SellerID].Summary(),
			Product: products[o.ProductID].Summary(),
		}
	}
	return views
}

// mergeCheckoutItems folds repeated products into one line so each product yields one order.
func mergeCheckoutItems(items []CheckoutItem) []CheckoutItem {
	merged := make([]CheckoutItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, CheckoutItem{ProductID: item.ProductID, Quantity: quantity})
	}
	return merged
}

func validateMeetingDetails(m *entity.MeetingDetails) error {
	m.Notes = strings.TrimSpace(m.Notes)
	if !entity.IsValidMeetingLocation(m.Location) {
		return errors.BadRequest("Please select a valid meeting location", nil)
	}
	if m.Date.IsZero() {
		return errors.BadRequest("Please provide a meeting date", nil)
	}
	if !entity.IsValidTimeSlot(m.TimeSlot) {
		return errors.BadRequest("Please select a valid time slot", nil)
	}
	if len([]rune(m.Notes)) > entity.MaxMeetingNotesLength {
		return errors.BadRequest(fmt.Sprintf("Notes cannot exceed %d characters", entity.MaxMeetingNotesLength), nil)
	}
	return nil
}

func sortNewestFirst(orders []*entity.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
