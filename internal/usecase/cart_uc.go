package usecase

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"mercadito/internal/domain"
)

type CartUC struct {
	Carts    domain.CartRepo
	Products domain.ProductRepo
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// Get lists every cart row but sums only items whose product is still
// active; a deactivated product stays visible with no contribution to the
// total.
func (uc *CartUC) Get(ctx context.Context, userID uuid.UUID) (*domain.Cart, error) {
	items, err := uc.Carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, it := range items {
		if it.Product != nil && it.Product.IsActive {
			total += float64(it.Quantity) * it.Product.Price
		}
	}
	return &domain.Cart{Items: items, Total: round2(total), ItemCount: len(items)}, nil
}

// Add inserts a row for (user, product) or merges into the existing one by
// summing quantities. The merged quantity is re-validated against current
// stock.
func (uc *CartUC) Add(ctx context.Context, userID, productID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.Validation("quantity must be a positive integer")
	}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Stock < quantity {
		return nil, &domain.InsufficientStockError{ProductName: p.Name}
	}

	existing, err := uc.Carts.FindByUserAndProduct(ctx, userID, productID)
	switch {
	case err == nil:
		merged := existing.Quantity + quantity
		if p.Stock < merged {
			return nil, &domain.InsufficientStockError{ProductName: p.Name}
		}
		existing.Quantity = merged
		if err := uc.Carts.Save(ctx, existing); err != nil {
			return nil, err
		}
		existing.Product = p
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		item := &domain.CartItem{ID: uuid.New(), UserID: userID, ProductID: productID, Quantity: quantity}
		if err := uc.Carts.Save(ctx, item); err != nil {
			return nil, err
		}
		item.Product = p
		return item, nil
	default:
		return nil, err
	}
}

// Update validates only the new explicit quantity against stock; unlike
// Add it never sums with what the row already holds.
func (uc *CartUC) Update(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		return nil, domain.Validation("quantity must be a positive integer")
	}
	item, err := uc.Carts.FindByID(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item.Product == nil {
		return nil, domain.ErrNotFound
	}
	if item.Product.Stock < quantity {
		return nil, &domain.InsufficientStockError{ProductName: item.Product.Name}
	}
	item.Quantity = quantity
	if err := uc.Carts.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *CartUC) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	return uc.Carts.Delete(ctx, itemID, userID)
}

func (uc *CartUC) Clear(ctx context.Context, userID uuid.UUID) error {
	return uc.Carts.ClearByUser(ctx, userID)
}
