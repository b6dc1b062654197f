package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mercadito/internal/domain"
)

type OrderUC struct {
	Orders   domain.OrderRepo
	Carts    domain.CartRepo
	Products domain.ProductRepo
}

type CreateOrderInput struct {
	DeliveryAddress string `json:"delivery_address"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
}

// Create turns the caller's cart into an order. The sequence is a saga, not
// a transaction: the order insert has one compensating delete (when the item
// insert fails); anything failing after that is logged and reported but not
// rolled back.
func (uc *OrderUC) Create(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*domain.Order, error) {
	details := []string{}
	addr := strings.TrimSpace(in.DeliveryAddress)
	if len(addr) < 10 || len(addr) > 500 {
		details = append(details, "delivery_address must be between 10 and 500 characters")
	}
	phone := strings.TrimSpace(in.Phone)
	if len(phone) < 8 || len(phone) > 20 {
		details = append(details, "phone must be between 8 and 20 characters")
	}
	if len(in.Notes) > 500 {
		details = append(details, "notes must not exceed 500 characters")
	}
	if len(details) > 0 {
		return nil, &domain.ValidationError{Details: details}
	}

	cartItems, err := uc.Carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, domain.ErrEmptyCart
	}

	total := 0.0
	for _, it := range cartItems {
		p := it.Product
		if p == nil || !p.IsActive {
			name := "product"
			if p != nil {
				name = p.Name
			}
			return nil, &domain.ProductUnavailableError{ProductName: name}
		}
		if p.Stock < it.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: p.Name}
		}
		total += float64(it.Quantity) * p.Price
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     round2(total),
		DeliveryAddress: addr,
		Phone:           phone,
		Notes:           strings.TrimSpace(in.Notes),
		Status:          domain.OrderStatusPending,
	}
	if err := uc.Orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(cartItems))
	for _, it := range cartItems {
		items = append(items, domain.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.Product.Price,
			TotalPrice: round2(float64(it.Quantity) * it.Product.Price),
		})
	}
	if err := uc.Orders.AddItems(ctx, items); err != nil {
		if derr := uc.Orders.Delete(ctx, order.ID); derr != nil {
			log.Error().Err(derr).Str("order_id", order.ID.String()).Msg("compensating order delete failed")
		}
		return nil, fmt.Errorf("create order items: %w", err)
	}

	// Past this point there is no rollback: the order and its items exist.
	for _, it := range cartItems {
		if err := uc.Products.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			log.Warn().Err(err).
				Str("order_id", order.ID.String()).
				Str("product_id", it.ProductID.String()).
				Msg("stock decrement failed after order creation")
			if errors.Is(err, domain.ErrStockConflict) {
				return nil, &domain.InsufficientStockError{ProductName: it.Product.Name}
			}
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := uc.Carts.ClearByUser(ctx, userID); err != nil {
		log.Error().Err(err).Str("order_id", order.ID.String()).Msg("cart clear failed after order creation")
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	return uc.Orders.FindByID(ctx, order.ID)
}

func (uc *OrderUC) List(ctx context.Context, caller *domain.UserProfile, page, limit int) ([]domain.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	f := domain.OrderFilter{Page: page, Limit: limit}
	if !caller.IsAdmin() {
		uid := caller.ID
		f.UserID = &uid
	}
	return uc.Orders.List(ctx, f)
}

// Get hides other users' orders behind the same NotFound as nonexistent ids,
// so callers cannot probe for order existence.
func (uc *OrderUC) Get(ctx context.Context, caller *domain.UserProfile, id uuid.UUID) (*domain.Order, error) {
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && o.UserID != caller.ID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// UpdateStatus validates enum membership only; transition adjacency is
// deliberately not enforced.
func (uc *OrderUC) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Validation("invalid order status")
	}
	return uc.Orders.UpdateStatus(ctx, id, status)
}
