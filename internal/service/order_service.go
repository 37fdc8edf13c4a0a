package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderService keeps product stock consistent with the set of orders across
// placement, quantity edits and deletion. Status changes never touch stock:
// moving an order to CANCELLED leaves stock where it is, only deletion
// restores it.
type OrderService interface {
	ListOrders(ctx context.Context, actorID, actorRole string) ([]model.Order, error)
	GetOrder(ctx context.Context, orderID, actorID, actorRole string) (*model.Order, error)
	PlaceOrder(ctx context.Context, customerID string, req model.PlaceOrderRequest) (*model.Order, error)
	UpdateOrderQuantity(ctx context.Context, orderID, actorID string, newQuantity int) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, actorRole, newStatus string) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID, actorID, actorRole string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{orderRepo: orderRepo, productRepo: productRepo}
}

// ListOrders returns every order for admins and only the actor's own
// orders for customers
func (s *orderService) ListOrders(ctx context.Context, actorID, actorRole string) ([]model.Order, error) {
	if actorRole == model.RoleAdmin {
		return s.orderRepo.FindAll(ctx)
	}
	return s.orderRepo.FindByUser(ctx, actorID)
}

// GetOrder returns a single order, visible to its owner and to admins
func (s *orderService) GetOrder(ctx context.Context, orderID, actorID, actorRole string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if actorRole != model.RoleAdmin && order.UserID != actorID {
		return nil, ErrForbidden
	}
	return order, nil
}

// PlaceOrder creates a PENDING order and takes its quantity out of the
// product's stock. Total is the product price at this moment times the
// quantity.
func (s *orderService) PlaceOrder(ctx context.Context, customerID string, req model.PlaceOrderRequest) (*model.Order, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for order: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	order := &model.Order{
		UserID:    customerID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Total:     product.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:    model.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.CreateWithStockDecrement(ctx, order); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	product.Stock -= req.Quantity
	order.Product = product
	return order, nil
}

// UpdateOrderQuantity changes the quantity of a PENDING order. Only the
// owning customer may do this; the total is recomputed from the product's
// current price and stock moves by the delta in both directions.
func (s *orderService) UpdateOrderQuantity(ctx context.Context, orderID, actorID string, newQuantity int) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order for update: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != actorID {
		return nil, ErrForbidden
	}
	if order.Status != model.StatusPending {
		return nil, ErrOrderNotPending
	}
	if newQuantity < 1 {
		return nil, ErrInvalidQuantity
	}

	delta := newQuantity - order.Quantity
	order.Quantity = newQuantity
	order.Total = order.Product.Price.Mul(decimal.NewFromInt(int64(newQuantity)))

	if err := s.orderRepo.UpdateQuantityWithStockAdjust(ctx, order, delta); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order quantity: %w", err)
	}

	order.Product.Stock -= delta
	return order, nil
}

// UpdateOrderStatus moves an order to any of the five statuses. Admin only;
// no transition ordering is enforced and stock is never touched.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID, actorRole, newStatus string) (*model.Order, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	if !model.ValidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to find order for status update: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, newStatus); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = newStatus
	return order, nil
}

// DeleteOrder removes an order and restores its quantity to the product's
// stock. Admins may delete any order; the owning customer only while it is
// still PENDING. The restore happens unconditionally, also for non-PENDING
// orders whose units already left the warehouse.
func (s *orderService) DeleteOrder(ctx context.Context, orderID, actorID, actorRole string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to find order for deletion: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	isAdmin := actorRole == model.RoleAdmin
	if !isAdmin && order.UserID != actorID {
		return ErrForbidden
	}
	if !isAdmin && order.Status != model.StatusPending {
		return ErrOrderNotPending
	}

	if err := s.orderRepo.DeleteWithStockRestore(ctx, order.ID, order.ProductID, order.Quantity); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
