package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// UserProfile is keyed by the identity provider's subject id, so profile and
// credential rows always share the same uuid.
type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string    `gorm:"size:200" json:"full_name"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:500" json:"address"`
	Role      Role      `gorm:"type:varchar(20);default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *UserProfile) IsAdmin() bool { return p.Role == RoleAdmin }

// Identity is what the identity provider vouches for: nothing but the
// subject id and email.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}
