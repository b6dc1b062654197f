package httpserver

import (
	"context"

	"github.com/google/uuid"

	"mercadito/internal/domain"
)

// Map-backed port implementations, enough to drive the handlers end to end.

type stubUsers struct {
	profiles map[uuid.UUID]*domain.UserProfile
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubUsers) Create(_ context.Context, p *domain.UserProfile) error {
	cp := *p
	s.profiles[p.ID] = &cp
	return nil
}

func (s *stubUsers) Update(_ context.Context, p *domain.UserProfile) error {
	return s.Create(context.Background(), p)
}

type stubProducts struct {
	products map[uuid.UUID]*domain.Product
}

func (s *stubProducts) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	out := []domain.Product{}
	for _, p := range s.products {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) FindAnyByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) Save(_ context.Context, p *domain.Product) error {
	cp := *p
	s.products[p.ID] = &cp
	return nil
}

func (s *stubProducts) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (s *stubProducts) DecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return domain.ErrStockConflict
	}
	p.Stock -= qty
	return nil
}

type stubCategories struct {
	categories map[uuid.UUID]*domain.Category
}

func (s *stubCategories) List(_ context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *stubCategories) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCategories) Save(_ context.Context, c *domain.Category) error {
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *stubCategories) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

type stubCarts struct {
	items    map[uuid.UUID]*domain.CartItem
	products *stubProducts
}

func (s *stubCarts) attach(it domain.CartItem) domain.CartItem {
	if p, ok := s.products.products[it.ProductID]; ok {
		cp := *p
		it.Product = &cp
	}
	return it
}

func (s *stubCarts) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, s.attach(*it))
		}
	}
	return out, nil
}

func (s *stubCarts) FindByID(_ context.Context, id, userID uuid.UUID) (*domain.CartItem, error) {
	it, ok := s.items[id]
	if !ok || it.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := s.attach(*it)
	return &cp, nil
}

func (s *stubCarts) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	for _, it := range s.items {
		if it.UserID == userID && it.ProductID == productID {
			cp := s.attach(*it)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCarts) Save(_ context.Context, item *domain.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	cp.Product = nil
	s.items[item.ID] = &cp
	return nil
}

func (s *stubCarts) Delete(_ context.Context, id, userID uuid.UUID) error {
	if it, ok := s.items[id]; ok && it.UserID == userID {
		delete(s.items, id)
	}
	return nil
}

func (s *stubCarts) ClearByUser(_ context.Context, userID uuid.UUID) error {
	for id, it := range s.items {
		if it.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

type stubOrders struct {
	orders map[uuid.UUID]*domain.Order
	items  map[uuid.UUID][]domain.OrderItem
}

func (s *stubOrders) Create(_ context.Context, o *domain.Order) error {
	cp := *o
	cp.Items = nil
	s.orders[o.ID] = &cp
	return nil
}

func (s *stubOrders) AddItems(_ context.Context, items []domain.OrderItem) error {
	for _, it := range items {
		s.items[it.OrderID] = append(s.items[it.OrderID], it)
	}
	return nil
}

func (s *stubOrders) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.orders, id)
	delete(s.items, id)
	return nil
}

func (s *stubOrders) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	cp.Items = append([]domain.OrderItem{}, s.items[id]...)
	return &cp, nil
}

func (s *stubOrders) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for id, o := range s.orders {
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		full, _ := s.FindByID(context.Background(), id)
		out = append(out, *full)
	}
	return out, int64(len(out)), nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	return s.FindByID(ctx, id)
}
