package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines operations for order data. The write operations
// that touch product stock run inside a single transaction with a
// conditional stock update, so a decrement can never drive stock negative
// and two concurrent placements cannot both consume the last units.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByUser(ctx context.Context, userID string) ([]model.Order, error)
	CreateWithStockDecrement(ctx context.Context, order *model.Order) error
	UpdateQuantityWithStockAdjust(ctx context.Context, order *model.Order, delta int) error
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteWithStockRestore(ctx context.Context, orderID, productID string, quantity int) error
}

type orderRepository struct {
	db DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderWithProductColumns = `o.id, o.user_id, o.product_id, o.quantity, o.total, o.status, o.created_at,
            p.id, p.name, p.description, p.price, p.stock, p.image_url, p.created_at`

func scanOrderWithProduct(row pgx.Row) (*model.Order, error) {
	o := &model.Order{Product: &model.Product{}}
	err := row.Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt,
		&o.Product.ID, &o.Product.Name, &o.Product.Description, &o.Product.Price,
		&o.Product.Stock, &o.Product.ImageURL, &o.Product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// FindByID retrieves an order together with its product
func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	sql := `SELECT ` + orderWithProductColumns + `
            FROM orders o JOIN products p ON o.product_id = p.id WHERE o.id = $1`
	o, err := scanOrderWithProduct(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

const orderListQuery = `SELECT o.id, o.user_id, o.product_id, o.quantity, o.total, o.status, o.created_at,
            u.id, u.name, u.email, u.role,
            p.id, p.name, p.description, p.price, p.stock, p.image_url, p.created_at
            FROM orders o
            JOIN users u ON o.user_id = u.id
            JOIN products p ON o.product_id = p.id`

func (r *orderRepository) queryOrders(ctx context.Context, sql string, args ...any) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o := model.Order{User: &model.UserSummary{}, Product: &model.Product{}}
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.Total, &o.Status, &o.CreatedAt,
			&o.User.ID, &o.User.Name, &o.User.Email, &o.User.Role,
			&o.Product.ID, &o.Product.Name, &o.Product.Description, &o.Product.Price,
			&o.Product.Stock, &o.Product.ImageURL, &o.Product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

// FindAll retrieves every order with its user and product, newest first
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	return r.queryOrders(ctx, orderListQuery+` ORDER BY o.created_at DESC`)
}

// FindByUser retrieves one user's orders, newest first
func (r *orderRepository) FindByUser(ctx context.Context, userID string) ([]model.Order, error) {
	return r.queryOrders(ctx, orderListQuery+` WHERE o.user_id = $1 ORDER BY o.created_at DESC`, userID)
}

// CreateWithStockDecrement inserts the order and takes its quantity out of
// the product's stock in one transaction. The decrement only matches when
// enough stock remains, so at most one of two racing placements for the
// last units can commit.
func (r *orderRepository) CreateWithStockDecrement(ctx context.Context, order *model.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		order.Quantity, order.ProductID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return ErrInsufficientStock
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, product_id, quantity, total, status, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`,
		order.ID, order.UserID, order.ProductID, order.Quantity, order.Total, order.Status, order.CreatedAt,
	).Scan(&order.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to create order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order creation: %w", err)
	}
	return nil
}

// UpdateQuantityWithStockAdjust writes the order's new quantity and total
// and moves the quantity delta out of (or back into) the product's stock in
// one transaction. A negative delta always matches; a positive one only
// when enough stock remains.
func (r *orderRepository) UpdateQuantityWithStockAdjust(ctx context.Context, order *model.Order, delta int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	cmdTag, err := tx.Exec(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		delta, order.ProductID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return ErrInsufficientStock
	}

	cmdTag, err = tx.Exec(ctx,
		`UPDATE orders SET quantity = $1, total = $2 WHERE id = $3`,
		order.Quantity, order.Total, order.ID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to update order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order update: %w", err)
	}
	return nil
}

// UpdateStatus writes a new status. Pure status changes have no stock side
// effect; in particular CANCELLED does not restore stock, only deletion does.
func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithStockRestore removes the order and puts its quantity back into
// the product's stock in one transaction. The restore is unconditional, even
// for orders past PENDING whose units already shipped.
func (r *orderRepository) DeleteWithStockRestore(ctx context.Context, orderID, productID string, quantity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, quantity, productID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}
	return nil
}
