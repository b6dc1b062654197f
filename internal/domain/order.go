package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;index" json:"user_id"`
	TotalAmount     float64     `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DeliveryAddress string      `gorm:"size:500;not null" json:"delivery_address"`
	Phone           string      `gorm:"size:20;not null" json:"phone"`
	Notes           string      `gorm:"size:500" json:"notes"`
	Status          OrderStatus `gorm:"type:varchar(20);index" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem snapshots quantity and price at order time. It is never
// recalculated from the live product afterwards.
type OrderItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice float64   `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Product    *Product  `gorm:"foreignKey:ProductID" json:"products,omitempty"`
}

// OrderFilter scopes listings. UserID nil means all orders (admin view).
type OrderFilter struct {
	UserID *uuid.UUID
	Page   int
	Limit  int
}
