package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one row per (user, product). Adding the same product again
// merges by summing quantity instead of inserting a second row.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"user_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index:idx_cart_user_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"products,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cart is the view returned to the client: every row listed, but the total
// skips items whose product has been deactivated.
type Cart struct {
	Items     []CartItem `json:"cart_items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}
