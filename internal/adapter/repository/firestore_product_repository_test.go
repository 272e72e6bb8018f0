package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/pkg/errors"
)

// newEmulatorClient connects to the Firestore emulator under a fresh project so tests never
// see each other's documents.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "campusmarket-"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func seedListings(t *testing.T, repo *firestoreProductRepository) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	listings := []entity.Product{
		{Title: "Calculus textbook", Description: "Second edition", Price: 200, Category: "Books", Condition: "Good", Status: entity.ProductStatusAvailable},
		{Title: "Desk lamp", Description: "Warm light", Price: 15, Category: "Electronics", Condition: "Like New", Status: entity.ProductStatusAvailable},
		{Title: "Physics textbook", Description: "Annotated", Price: 120, Category: "Books", Condition: "Fair", Status: entity.ProductStatusAvailable},
		{Title: "Road bike", Description: "Needs tyres", Price: 900, Category: "Sports", Condition: "Fair", Status: entity.ProductStatusSold},
		{Title: "Chemistry textbook", Description: "Clean copy", Price: 80, Category: "Books", Condition: "Good", Status: entity.ProductStatusReserved},
	}
	for i := range listings {
		p := listings[i]
		p.SellerID = "seller"
		p.Images = []string{}
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(context.Background(), &p))
	}
}

func titles(products []*entity.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestFirestoreProductList(t *testing.T) {
	repo := NewFirestoreProductRepository(newEmulatorClient(t)).(*firestoreProductRepository)
	seedListings(t, repo)
	ctx := context.Background()
	minPrice, maxPrice := 50.0, 250.0

	tests := []struct {
		name   string
		filter entity.ProductFilter
		limit  int
		offset int
		want   []string
		total  int64
	}{
		{
			name:   "available newest first",
			filter: entity.ProductFilter{Status: entity.ProductStatusAvailable},
			limit:  12,
			want:   []string{"Physics textbook", "Desk lamp", "Calculus textbook"},
			total:  3,
		},
		{
			name:   "category and price range",
			filter: entity.ProductFilter{Category: "Books", MinPrice: &minPrice, MaxPrice: &maxPrice, Sort: entity.SortPriceLow},
			limit:  12,
			want:   []string{"Chemistry textbook", "Physics textbook", "Calculus textbook"},
			total:  3,
		},
		{
			name:   "search with condition",
			filter: entity.ProductFilter{Search: "textbook", Condition: "Good", Sort: entity.SortOldest},
			limit:  12,
			want:   []string{"Calculus textbook", "Chemistry textbook"},
			total:  2,
		},
		{
			name:   "second page",
			filter: entity.ProductFilter{Sort: entity.SortPriceHigh},
			limit:  2,
			offset: 2,
			want:   []string{"Physics textbook", "Chemistry textbook"},
			total:  5,
		},
		{
			name:   "past the end",
			filter: entity.ProductFilter{},
			limit:  12,
			offset: 24,
			want:   []string{},
			total:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := repo.List(ctx, tt.filter, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			assert.Equal(t, tt.want, titles(products))
		})
	}
}

func TestFirestoreProductGetMissing(t *testing.T) {
	repo := NewFirestoreProductRepository(newEmulatorClient(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}
