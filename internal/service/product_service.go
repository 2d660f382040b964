package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockroom/internal/cache"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
	"stockroom/internal/repository"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = time.Minute
)

// ProductFields carries the writable fields of a product.
type ProductFields struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
	Category string
}

// ProductService handles inventory operations with a cache-aside list cache.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, fields ProductFields) (*model.Product, error)
	Update(ctx context.Context, id uuid.UUID, fields ProductFields) (*model.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

// List returns all products, serving from cache when possible.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	if data, _ := s.cache.Get(ctx, productListCacheKey); data != nil {
		var cached []model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if payload, err := json.Marshal(products); err == nil {
		_ = s.cache.Set(ctx, productListCacheKey, payload, productListCacheTTL)
	}

	return products, nil
}

// Create persists a new product and invalidates the list cache.
func (s *productService) Create(ctx context.Context, fields ProductFields) (*model.Product, error) {
	product := &model.Product{
		Name:     fields.Name,
		Quantity: fields.Quantity,
		Price:    fields.Price,
		Category: fields.Category,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// Update replaces the writable fields of an existing product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, fields ProductFields) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	product.Name = fields.Name
	product.Quantity = fields.Quantity
	product.Price = fields.Price
	product.Category = fields.Category
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	_ = s.cache.Delete(ctx, productListCacheKey)
	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	_ = s.cache.Delete(ctx, productListCacheKey)
	return nil
}
