package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"
)

// In-memory repository fakes honoring the same contracts as the pgx-backed
// implementations, including the conditional stock decrement.

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
	seq   int
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	stored := *user
	r.users[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if u, ok := r.users[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeProductRepo struct {
	products map[string]*model.Product
	seq      int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*model.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("product-%d", r.seq)
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context) ([]model.Product, error) {
	var products []model.Product
	for _, p := range r.products {
		products = append(products, *p)
	}
	return products, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *p
	r.products[p.ID] = &stored
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) stock(id string) int {
	return r.products[id].Stock
}

type fakeOrderRepo struct {
	orders   map[string]*model.Order
	products *fakeProductRepo
	seq      int
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order), products: products}
}

func (r *fakeOrderRepo) withProduct(o *model.Order) *model.Order {
	copied := *o
	if p, ok := r.products.products[o.ProductID]; ok {
		productCopy := *p
		copied.Product = &productCopy
	}
	return &copied
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	if o, ok := r.orders[id]; ok {
		return r.withProduct(o), nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]model.Order, error) {
	var orders []model.Order
	for _, o := range r.orders {
		orders = append(orders, *r.withProduct(o))
	}
	return orders, nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID string) ([]model.Order, error) {
	var orders []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			orders = append(orders, *r.withProduct(o))
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) CreateWithStockDecrement(_ context.Context, order *model.Order) error {
	p, ok := r.products.products[order.ProductID]
	if !ok || p.Stock < order.Quantity {
		return repository.ErrInsufficientStock
	}
	p.Stock -= order.Quantity

	if order.ID == "" {
		r.seq++
		order.ID = fmt.Sprintf("order-%d", r.seq)
	}
	stored := *order
	stored.Product = nil
	stored.User = nil
	r.orders[order.ID] = &stored
	return nil
}

func (r *fakeOrderRepo) UpdateQuantityWithStockAdjust(_ context.Context, order *model.Order, delta int) error {
	p, ok := r.products.products[order.ProductID]
	if !ok || p.Stock < delta {
		return repository.ErrInsufficientStock
	}
	stored, ok := r.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock -= delta
	stored.Quantity = order.Quantity
	stored.Total = order.Total
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	stored, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Status = status
	return nil
}

func (r *fakeOrderRepo) DeleteWithStockRestore(_ context.Context, orderID, productID string, quantity int) error {
	if _, ok := r.orders[orderID]; !ok {
		return repository.ErrNotFound
	}
	if p, ok := r.products.products[productID]; ok {
		p.Stock += quantity
	}
	delete(r.orders, orderID)
	return nil
}
