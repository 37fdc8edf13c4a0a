package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogProvider supplies seed products for an empty catalog
type CatalogProvider interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// ProductService provides catalog reads and admin-only catalog writes
type ProductService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	repo    repository.ProductRepository
	catalog CatalogProvider
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, provider CatalogProvider) ProductService {
	return &productService{repo: repo, catalog: provider}
}

// seedFromCatalog fills an empty catalog from the external provider. Remote
// products already present by name are skipped; stock is randomized the way
// the storefront always has. Every failure is logged and swallowed, the
// listing must never break because the provider is down.
func (s *productService) seedFromCatalog(ctx context.Context) {
	remote, err := s.catalog.FetchProducts(ctx)
	if err != nil {
		log.Printf("Failed to fetch seed products from catalog provider: %v", err)
		return
	}

	for _, item := range remote {
		existing, err := s.repo.FindByName(ctx, item.Title)
		if err != nil {
			log.Printf("Failed to check existing product %q during seeding: %v", item.Title, err)
			continue
		}
		if existing != nil {
			continue
		}

		imageURL := item.Image
		product := &model.Product{
			Name:        item.Title,
			Description: item.Description,
			Price:       decimal.NewFromFloat(item.Price),
			Stock:       rand.Intn(100) + 10,
			CreatedAt:   time.Now(),
		}
		if imageURL != "" {
			product.ImageURL = &imageURL
		}
		if err := s.repo.Create(ctx, product); err != nil {
			log.Printf("Failed to seed product %q: %v", item.Title, err)
		}
	}
}

// ListProducts returns the catalog, seeding it from the external provider
// on the first read of an empty table
func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if count == 0 {
		s.seedFromCatalog(ctx)
	}

	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct returns a single product
func (s *productService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// CreateProduct adds a product to the catalog
func (s *productService) CreateProduct(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, newValidationError("name is required")
	}
	if req.Price.IsNegative() {
		return nil, newValidationError("price must not be negative")
	}
	if *req.Stock < 0 {
		return nil, newValidationError("stock must not be negative")
	}

	product := &model.Product{
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		Stock:       *req.Stock,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies only the fields present in the request
func (s *productService) UpdateProduct(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, newValidationError("name must not be empty")
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, newValidationError("price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, newValidationError("stock must not be negative")
		}
		product.Stock = *req.Stock
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := s.repo.Update(ctx, product); err != nil {
		if err == repository.ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
