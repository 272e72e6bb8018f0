package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusConfirmed))
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanTransition(OrderStatusConfirmed, OrderStatusCompleted))
	assert.True(t, CanTransition(OrderStatusConfirmed, OrderStatusCancelled))

	assert.False(t, CanTransition(OrderStatusPending, OrderStatusCompleted))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusCancelled))
	assert.False(t, CanTransition(OrderStatusCancelled, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusPending, OrderStatusPending))
}

func TestProductFilterMatches(t *testing.T) {
	min, max := 100.0, 300.0
	p := &Product{
		Title:       "Calculus Textbook",
		Description: "Early transcendentals, 8th edition",
		Price:       200,
		Category:    "Books",
		Condition:   "Good",
		Status:      ProductStatusAvailable,
	}

	assert.True(t, ProductFilter{}.Matches(p))
	assert.True(t, ProductFilter{Status: ProductStatusAvailable, Category: "Books", MinPrice: &min, MaxPrice: &max}.Matches(p))
	assert.True(t, ProductFilter{Search: "physics TEXTBOOK"}.Matches(p))
	assert.True(t, ProductFilter{Search: "edition"}.Matches(p))

	assert.False(t, ProductFilter{Status: ProductStatusReserved}.Matches(p))
	assert.False(t, ProductFilter{Condition: "New"}.Matches(p))
	assert.False(t, ProductFilter{Search: "lamp"}.Matches(p))

	low := 250.0
	assert.False(t, ProductFilter{MinPrice: &low}.Matches(p))
}

func TestSortProducts(t *testing.T) {
	now := time.Now()
	a := &Product{ID: "a", Price: 30, CreatedAt: now.Add(-2 * time.Hour)}
	b := &Product{ID: "b", Price: 10, CreatedAt: now.Add(-1 * time.Hour)}
	c := &Product{ID: "c", Price: 20, CreatedAt: now}

	ids := func(ps []*Product) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	list := []*Product{a, b, c}
	SortProducts(list, "")
	assert.Equal(t, []string{"c", "b", "a"}, ids(list))

	SortProducts(list, SortOldest)
	assert.Equal(t, []string{"a", "b", "c"}, ids(list))

	SortProducts(list, SortPriceLow)
	assert.Equal(t, []string{"b", "c", "a"}, ids(list))

	SortProducts(list, SortPriceHigh)
	assert.Equal(t, []string{"a", "c", "b"}, ids(list))
}

func TestCartRecalculate(t *testing.T) {
	cart := NewCart("u1")
	cart.Items = append(cart.Items,
		CartItem{ID: "1", ProductID: "p1", Quantity: 3, Price: 0.1},
		CartItem{ID: "2", ProductID: "p2", Quantity: 2, Price: 200},
	)
	cart.Recalculate()
	assert.Equal(t, 400.3, cart.TotalAmount)

	assert.Equal(t, 1, cart.ItemIndexByProduct("p2"))
	assert.Equal(t, -1, cart.ItemIndexByProduct("p3"))
	assert.Equal(t, 0, cart.ItemIndex("1"))

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}

func TestFeedbackIsTestimonial(t *testing.T) {
	assert.True(t, (&Feedback{Rating: 4}).IsTestimonial())
	assert.False(t, (&Feedback{Rating: 3}).IsTestimonial())
	assert.False(t, (&Feedback{Rating: 5, IsAnonymous: true}).IsTestimonial())
}
