package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines operations for product data
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	sql := `INSERT INTO products (id, name, description, price, stock, image_url, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, p.ID, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.CreatedAt).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, name, description, price, stock, image_url, created_at FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindByName retrieves a product by its exact name. Used by catalog seeding
// to avoid inserting duplicates.
func (r *productRepository) FindByName(ctx context.Context, name string) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, name, description, price, stock, image_url, created_at FROM products WHERE name = $1`
	err := r.db.QueryRow(ctx, sql, name).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}
	return p, nil
}

// FindAll retrieves all products, newest first
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	sql := `SELECT id, name, description, price, stock, image_url, created_at FROM products ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// Count returns the number of products in the catalog
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Update writes the full product row back
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products SET name = $1, description = $2, price = $3, stock = $4, image_url = $5 WHERE id = $6`
	cmdTag, err := r.db.Exec(ctx, sql, p.Name, p.Description, p.Price, p.Stock, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product from the database
func (r *productRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
