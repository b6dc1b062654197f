// Package identity stands in for the managed identity service: it owns the
// credential table and bearer tokens, and hands the rest of the system an
// opaque (user id, email) pair. Profiles are someone else's business.
package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mercadito/internal/domain"
)

const tokenTTL = 24 * time.Hour

// User is the credential row. PasswordHash is empty for accounts created
// through an external OAuth provider.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:200;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:100"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "identity_users" }

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Provider struct {
	db     *gorm.DB
	secret []byte
}

func NewProvider(db *gorm.DB, secret []byte) *Provider {
	return &Provider{db: db, secret: secret}
}

func (p *Provider) CreateUser(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var count int64
	if err := p.db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	if err := p.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &domain.Identity{UserID: u.ID, Email: u.Email}, nil
}

func (p *Provider) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return p.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}

func (p *Provider) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	if err := p.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, domain.ErrUnauthenticated
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{UserID: u.ID, Email: u.Email}, nil
}

func (p *Provider) EnsureUser(ctx context.Context, email string) (*domain.Identity, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u User
	err := p.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err == nil {
		return &domain.Identity{UserID: u.ID, Email: u.Email}, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	u = User{ID: uuid.New(), Email: email}
	if err := p.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, false, err
	}
	return &domain.Identity{UserID: u.ID, Email: u.Email}, true, nil
}

func (p *Provider) IssueToken(id *domain.Identity) (string, error) {
	claims := Claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    "mercadito",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

func (p *Provider) VerifyToken(ctx context.Context, token string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Identity{UserID: uid, Email: claims.Email}, nil
}
