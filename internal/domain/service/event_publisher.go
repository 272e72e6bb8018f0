package service

import (
	"context"
	"time"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	Status     string    `json:"status"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishOrderEvent(ctx context.Context, event OrderEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
