package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        string    `json:"id" firestore:"id"`
	ProductID string    `json:"product_id" firestore:"productId"`
	Quantity  int       `json:"quantity" firestore:"quantity"`
	Price     float64   `json:"price" firestore:"price"`
	AddedAt   time.Time `json:"added_at" firestore:"addedAt"`
}

// Cart is keyed by its owner; the document id is the user id.
type Cart struct {
	UserID      string     `json:"user_id" firestore:"userId"`
	Items       []CartItem `json:"items" firestore:"items"`
	TotalAmount float64    `json:"total_amount" firestore:"totalAmount"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
}

func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ItemIndexByProduct returns the index of the entry holding productID, or -1.
func (c *Cart) ItemIndexByProduct(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) ItemIndex(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// Recalculate refreshes the denormalized total from the price snapshots.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(LineTotal(item.Price, item.Quantity))
	}
	c.TotalAmount = total.InexactFloat64()
}

func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.TotalAmount = 0
}

// LineTotal is price × quantity in exact decimal arithmetic.
func LineTotal(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}
