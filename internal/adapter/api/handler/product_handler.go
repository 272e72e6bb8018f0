package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/domain/entity"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
	"campusmarket/pkg/utils"
)

type ProductHandler struct {
	productUseCase *usecase.ProductUseCase
	uploader       *ImageUploader
}

func NewProductHandler(productUseCase *usecase.ProductUseCase, uploader *ImageUploader) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		uploader:       uploader,
	}
}

// createProductRequest binds from JSON or from a multipart form, in which case images are files.
type createProductRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,max=100"`
	Description string   `json:"description" form:"description" validate:"required,max=1000"`
	Price       float64  `json:"price" form:"price" validate:"gte=0"`
	Category    string   `json:"category" form:"category" validate:"required,oneof=Books Electronics Furniture Clothing Sports Stationery Other"`
	Condition   string   `json:"condition" form:"condition" validate:"required,oneof=New 'Like New' Good Fair Poor"`
	Images      []string `json:"images" form:"images" validate:"omitempty,dive,url"`
	Location    string   `json:"location" form:"location"`
}

type updateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" validate:"omitempty,oneof=Books Electronics Furniture Clothing Sports Stationery Other"`
	Condition   *string  `json:"condition" validate:"omitempty,oneof=New 'Like New' Good Fair Poor"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
	Location    *string  `json:"location"`
	Status      *string  `json:"status" validate:"omitempty,oneof=Available Reserved Sold"`
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := middleware.UserID(c)
	ctx := c.Request().Context()

	uploaded, err := h.uploader.uploadProductImages(c)
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.CreateProduct(ctx, sellerID, usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Images:      req.Images,
		Location:    req.Location,
	}, uploaded)
	if err != nil {
		h.uploader.discard(ctx, uploaded)
		return response.Error(c, err)
	}

	return response.Created(c, "Product created successfully", response.Fields{"product": product})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.productUseCase.UpdateProduct(c.Request().Context(), c.Param("id"), middleware.UserID(c), usecase.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Images:      req.Images,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Product updated successfully", response.Fields{"product": product})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.productUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "", response.Fields{"product": product})
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := entity.ProductFilter{
		Category:  c.QueryParam("category"),
		Condition: c.QueryParam("condition"),
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Sort:      c.QueryParam("sort"),
	}

	var err error
	if filter.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		return response.Error(c, err)
	}
	if filter.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	products, total, err := h.productUseCase.ListProducts(c.Request().Context(), filter, pagination)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, "products", products, len(products), total, pagination)
}

func (h *ProductHandler) ListMyProducts(c echo.Context) error {
	products, err := h.productUseCase.ListMyProducts(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "products", products, len(products))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productUseCase.DeleteProduct(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Product deleted successfully", nil)
}

func priceParam(c echo.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.BadRequest("Invalid "+name, err)
	}
	return &value, nil
}
