package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/utils"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		doc := r.client.Collection(productsCollection).NewDoc()
		product.ID = doc.ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to create product", err)
	}

	return nil
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError(err, "Product", "Failed to get product")
	}

	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}

	return &product, nil
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	docs, err := getAll(ctx, r.client, productsCollection, ids)
	if err != nil {
		return nil, errors.Internal("Failed to get products", err)
	}

	products := make(map[string]*entity.Product, len(docs))
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products[product.ID] = &product
	}

	return products, nil
}

// List pushes the equality filters down to Firestore and applies price range, text search,
// sorting and the page window in memory. Firestore has no full-text search.
func (r *firestoreProductRepository) List(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	query := r.client.Collection(productsCollection).Query
	if filter.Status != "" {
		query = query.Where("status", "==", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Condition != "" {
		query = query.Where("condition", "==", filter.Condition)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list products", err)
	}

	matched := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, 0, errors.Internal("Failed to parse product data", err)
		}
		if filter.Matches(&product) {
			matched = append(matched, &product)
		}
	}

	entity.SortProducts(matched, filter.Sort)
	total := int64(len(matched))

	page := utils.PaginationParams{PageSize: limit, Offset: offset}
	start, end := page.Window(len(matched))

	return matched[start:end], total, nil
}

func (r *firestoreProductRepository) ListBySellerID(ctx context.Context, sellerID string) ([]*entity.Product, error) {
	docs, err := r.client.Collection(productsCollection).Where("sellerId", "==", sellerID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list seller products", err)
	}

	products := make([]*entity.Product, 0, len(docs))
	for _, doc := range docs {
		var product entity.Product
		if err := doc.DataTo(&product); err != nil {
			return nil, errors.Internal("Failed to parse product data", err)
		}
		products = append(products, &product)
	}

	return products, nil
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	_, err := r.client.Collection(productsCollection).Doc(product.ID).Set(ctx, product)
	if err != nil {
		return errors.Internal("Failed to update product", err)
	}

	return nil
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(productsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete product", err)
	}

	return nil
}

func (r *firestoreProductRepository) IncrementViews(ctx context.Context, id string) (*entity.Product, error) {
	_, err := r.client.Collection(productsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return nil, storeError(err, "Product", "Failed to increment product views")
	}

	return r.GetByID(ctx, id)
}
