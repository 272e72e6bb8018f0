package entity

import (
	"sort"
	"strings"
	"time"
)

const (
	ProductStatusAvailable = "Available"
	ProductStatusReserved  = "Reserved"
	ProductStatusSold      = "Sold"
)

var ProductStatuses = []string{ProductStatusAvailable, ProductStatusReserved, ProductStatusSold}

var ProductCategories = []string{
	"Books",
	"Electronics",
	"Furniture",
	"Clothing",
	"Sports",
	"Stationery",
	"Other",
}

var ProductConditions = []string{"New", "Like New", "Good", "Fair", "Poor"}

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

type Product struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	Category    string    `json:"category" firestore:"category"`
	Condition   string    `json:"condition" firestore:"condition"`
	Images      []string  `json:"images" firestore:"images"`
	SellerID    string    `json:"seller_id" firestore:"sellerId"`
	Status      string    `json:"status" firestore:"status"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	Views       int       `json:"views" firestore:"views"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ProductSummary is the projection of a product joined into carts and orders.
type ProductSummary struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Price     float64      `json:"price"`
	Images    []string     `json:"images"`
	Category  string       `json:"category"`
	Condition string       `json:"condition,omitempty"`
	Location  string       `json:"location,omitempty"`
	Status    string       `json:"status,omitempty"`
	Seller    *UserSummary `json:"seller,omitempty"`
}

func (p *Product) Summary() *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Images:    p.Images,
		Category:  p.Category,
		Condition: p.Condition,
		Location:  p.Location,
		Status:    p.Status,
	}
}

func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusAvailable
}

// ProductFilter narrows the public listing query. Nil price bounds are open.
type ProductFilter struct {
	Status    string
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	Sort      string
}

// Matches reports whether p passes every non-empty criterion of f. Search behaves like a text
// index: any whitespace separated term found in the title or description is a hit.
func (f ProductFilter) Matches(p *Product) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Condition != "" && p.Condition != f.Condition {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}

	terms := strings.Fields(strings.ToLower(f.Search))
	if len(terms) == 0 {
		return true
	}
	haystack := strings.ToLower(p.Title + " " + p.Description)
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

// NormalizeSort maps unknown sort keys to newest.
func NormalizeSort(s string) string {
	switch s {
	case SortOldest, SortPriceLow, SortPriceHigh:
		return s
	default:
		return SortNewest
	}
}

// SortProducts orders products in place by one of the sort keys; ties keep creation order.
func SortProducts(products []*Product, key string) {
	var less func(a, b *Product) bool
	switch NormalizeSort(key) {
	case SortOldest:
		less = func(a, b *Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortPriceLow:
		less = func(a, b *Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b *Product) bool { return a.Price > b.Price }
	default:
		less = func(a, b *Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
}

func IsValidCategory(c string) bool {
	return contains(ProductCategories, c)
}

func IsValidCondition(c string) bool {
	return contains(ProductConditions, c)
}

func IsValidProductStatus(s string) bool {
	return contains(ProductStatuses, s)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
