package domain

import (
	"context"

	"github.com/google/uuid"
)

// IdentityVerifier is the external identity provider: it owns credentials
// and token verification, nothing else. Profiles live in UserRepo.
type IdentityVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Identity, error)
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	CreateUser(ctx context.Context, email, password string) (*Identity, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// EnsureUser resolves an externally verified email (e.g. Google sign-in)
	// to an identity, creating a password-less one on first sight.
	EnsureUser(ctx context.Context, email string) (*Identity, bool, error)
	IssueToken(id *Identity) (string, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	Create(ctx context.Context, p *UserProfile) error
	Update(ctx context.Context, p *UserProfile) error
}

type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	// FindByID returns only active products; deactivated rows read as ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindAnyByID ignores is_active, for admin edits and reactivation.
	FindAnyByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Save(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	// DecrementStock applies stock = stock - qty only while stock >= qty,
	// returning ErrStockConflict when no row qualifies.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error
}

type CategoryRepo interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	Save(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)
	FindByID(ctx context.Context, id, userID uuid.UUID) (*CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ClearByUser(ctx context.Context, userID uuid.UUID) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	AddItems(ctx context.Context, items []OrderItem) error
	// Delete is the compensating action when AddItems fails mid-checkout.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (*Order, error)
}
