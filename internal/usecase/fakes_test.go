package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"mercadito/internal/domain"
)

// In-memory stand-ins for the store ports, so workflow semantics can be
// exercised without a live database.

type fakeProductRepo struct {
	products map[uuid.UUID]*domain.Product
	listCall *domain.ProductFilter
}

func newFakeProductRepo(ps ...*domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[uuid.UUID]*domain.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.listCall = &f
	out := []domain.Product{}
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if f.CategoryID != uuid.Nil && p.CategoryID != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) FindAnyByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsActive = false
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return domain.ErrStockConflict
	}
	p.Stock -= qty
	return nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*domain.Category
}

func newFakeCategoryRepo(cs ...*domain.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{categories: map[uuid.UUID]*domain.Category{}}
	for _, c := range cs {
		r.categories[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Save(_ context.Context, c *domain.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

type fakeCartRepo struct {
	items    map[uuid.UUID]*domain.CartItem
	products *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{items: map[uuid.UUID]*domain.CartItem{}, products: products}
}

func (r *fakeCartRepo) attach(it domain.CartItem) domain.CartItem {
	if p, ok := r.products.products[it.ProductID]; ok {
		cp := *p
		it.Product = &cp
	}
	return it
}

func (r *fakeCartRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	for _, it := range r.items {
		if it.UserID == userID {
			out = append(out, r.attach(*it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id, userID uuid.UUID) (*domain.CartItem, error) {
	it, ok := r.items[id]
	if !ok || it.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := r.attach(*it)
	return &cp, nil
}

func (r *fakeCartRepo) FindByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	for _, it := range r.items {
		if it.UserID == userID && it.ProductID == productID {
			cp := r.attach(*it)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCartRepo) Save(_ context.Context, item *domain.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	cp.Product = nil
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	if it, ok := r.items[id]; ok && it.UserID == userID {
		delete(r.items, id)
	}
	return nil
}

func (r *fakeCartRepo) ClearByUser(_ context.Context, userID uuid.UUID) error {
	for id, it := range r.items {
		if it.UserID == userID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders      map[uuid.UUID]*domain.Order
	items       map[uuid.UUID][]domain.OrderItem
	products    *fakeProductRepo
	addItemsErr error
	statusCalls int
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   map[uuid.UUID]*domain.Order{},
		items:    map[uuid.UUID][]domain.OrderItem{},
		products: products,
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	cp := *o
	cp.Items = nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) AddItems(_ context.Context, items []domain.OrderItem) error {
	if r.addItemsErr != nil {
		return r.addItemsErr
	}
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	for _, it := range r.items[id] {
		if p, ok := r.products.products[it.ProductID]; ok {
			pc := *p
			it.Product = &pc
		}
		cp.Items = append(cp.Items, it)
	}
	return &cp, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	out := []domain.Order{}
	for id, o := range r.orders {
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		full, _ := r.FindByID(context.Background(), id)
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	r.statusCalls++
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	return r.FindByID(ctx, id)
}
