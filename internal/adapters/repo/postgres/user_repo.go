package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mercadito/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.UserProfile, error) {
	var p domain.UserProfile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *UserRepo) Create(ctx context.Context, p *domain.UserProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *UserRepo) Update(ctx context.Context, p *domain.UserProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
