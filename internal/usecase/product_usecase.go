package usecase

import (
	"context"
	"strings"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/internal/domain/service"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/utils"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	fileService service.FileUploadService
	policy      Policy
}

func NewProductUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		fileService: fileService,
	}
}

// ProductView is a product joined with its seller.
type ProductView struct {
	*entity.Product
	Seller *entity.UserSummary `json:"seller,omitempty"`
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	Images      []string
	Location    string
}

// UpdateProductInput is a partial patch; nil fields are left untouched.
type UpdateProductInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Condition   *string
	Images      []string
	Location    *string
	Status      *string
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, sellerID string, input CreateProductInput, uploadedImages []string) (*ProductView, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateProductFields(input.Title, input.Description, input.Price, input.Category, input.Condition); err != nil {
		return nil, err
	}

	// Uploaded files win over URLs sent in the body.
	images := input.Images
	if len(uploadedImages) > 0 {
		images = uploadedImages
	}
	if images == nil {
		images = []string{}
	}

	now := time.Now()
	product := &entity.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Condition:   input.Condition,
		Images:      images,
		SellerID:    sellerID,
		Status:      entity.ProductStatusAvailable,
		Location:    strings.TrimSpace(input.Location),
		Views:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return uc.withSeller(ctx, product), nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id, requesterID string, input UpdateProductInput) (*ProductView, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.Authorize(Principal{UserID: requesterID}, product, ActionUpdateListing); err != nil {
		return nil, err
	}

	if input.Title != nil {
		product.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.Condition != nil {
		product.Condition = *input.Condition
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Location != nil {
		product.Location = strings.TrimSpace(*input.Location)
	}
	if input.Status != nil {
		if !entity.IsValidProductStatus(*input.Status) {
			return nil, errors.BadRequest("Invalid status", nil)
		}
		product.Status = *input.Status
	}

	if err := validateProductFields(product.Title, product.Description, product.Price, product.Category, product.Condition); err != nil {
		return nil, err
	}

	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return uc.withSeller(ctx, product), nil
}

// GetProduct returns the product in any status and counts the read as a view.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	product, err := uc.productRepo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.withSeller(ctx, product), nil
}

// ListProducts serves the public catalogue: only Available listings are ever returned.
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter entity.ProductFilter, pagination utils.PaginationParams) ([]*ProductView, int64, error) {
	filter.Status = entity.ProductStatusAvailable
	if strings.EqualFold(filter.Category, "all") {
		filter.Category = ""
	}
	if strings.EqualFold(filter.Condition, "all") {
		filter.Condition = ""
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Sort = entity.NormalizeSort(filter.Sort)

	products, total, err := uc.productRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	return uc.withSellers(ctx, products), total, nil
}

func (uc *ProductUseCase) ListMyProducts(ctx context.Context, sellerID string) ([]*ProductView, error) {
	products, err := uc.productRepo.ListBySellerID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	entity.SortProducts(products, entity.SortNewest)
	return uc.withSellers(ctx, products), nil
}

// DeleteProduct removes the listing permanently. Orders that reference it are left as they are.
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id, requesterID string) error {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.policy.Authorize(Principal{UserID: requesterID}, product, ActionDeleteListing); err != nil {
		return err
	}

	if err := uc.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	if uc.fileService != nil {
		for _, url := range product.Images {
			if err := uc.fileService.DeleteFile(ctx, url); err != nil {
				logger.Debug("Skipping image cleanup for product %s (%s): %v", id, url, err)
			}
		}
	}

	return nil
}

func (uc *ProductUseCase) withSeller(ctx context.Context, product *entity.Product) *ProductView {
	return uc.withSellers(ctx, []*entity.Product{product})[0]
}

func (uc *ProductUseCase) withSellers(ctx context.Context, products []*entity.Product) []*ProductView {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.SellerID)
	}

	sellers, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Failed to load sellers for %d products: %v", len(products), err)
	}

	views := make([]*ProductView, len(products))
	for i, p := range products {
		views[i] = &ProductView{Product: p, Seller: sellers[p.SellerID].Summary()}
	}
	return views
}

func validateProductFields(title, description string, price float64, category, condition string) error {
	if title == "" {
		return errors.BadRequest("Please provide a product title", nil)
	}
	if strings.TrimSpace(description) == "" {
		return errors.BadRequest("Please provide a description", nil)
	}
	if price < 0 {
		return errors.BadRequest("Price must be at least 0", nil)
	}
	if !entity.IsValidCategory(category) {
		return errors.BadRequest("Please select a valid category", nil)
	}
	if !entity.IsValidCondition(condition) {
		return errors.BadRequest("Please specify a valid condition", nil)
	}
	return nil
}
