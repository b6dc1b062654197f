package usecase

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"mercadito/internal/domain"
)

// maxPageSize caps list endpoints so an unchecked limit cannot pull the
// whole table.
const maxPageSize = 100

type CatalogUC struct {
	Products   domain.ProductRepo
	Categories domain.CategoryRepo
}

type ProductInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CategoryID  uuid.UUID `json:"category_id"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	IsActive    *bool     `json:"is_active"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	return uc.Products.List(ctx, f)
}

func (uc *CatalogUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

func (uc *CatalogUC) validateProduct(ctx context.Context, in ProductInput) error {
	details := []string{}
	name := strings.TrimSpace(in.Name)
	if len(name) < 1 || len(name) > 200 {
		details = append(details, "name must be between 1 and 200 characters")
	}
	if len(in.Description) > 1000 {
		details = append(details, "description must not exceed 1000 characters")
	}
	if in.Price < 0 {
		details = append(details, "price must be a positive number")
	}
	if in.Stock < 0 {
		details = append(details, "stock must be a positive integer")
	}
	if in.ImageURL != "" {
		if u, err := url.Parse(in.ImageURL); err != nil || u.Scheme == "" || u.Host == "" {
			details = append(details, "invalid image URL")
		}
	}
	if in.CategoryID == uuid.Nil {
		details = append(details, "invalid category id")
	} else if _, err := uc.Categories.FindByID(ctx, in.CategoryID); err != nil {
		if err == domain.ErrNotFound {
			details = append(details, "category does not exist")
		} else {
			return err
		}
	}
	if len(details) > 0 {
		return &domain.ValidationError{Details: details}
	}
	return nil
}

func (uc *CatalogUC) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := uc.validateProduct(ctx, in); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Price:       in.Price,
		Stock:       in.Stock,
		IsActive:    true,
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return uc.Products.FindAnyByID(ctx, p.ID)
}

func (uc *CatalogUC) Update(ctx context.Context, id uuid.UUID, in ProductInput) (*domain.Product, error) {
	p, err := uc.Products.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validateProduct(ctx, in); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.ImageURL = in.ImageURL
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.Stock = in.Stock
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return uc.Products.FindAnyByID(ctx, id)
}

// Deactivate soft-deletes: the row survives for historical order items.
func (uc *CatalogUC) Deactivate(ctx context.Context, id uuid.UUID) error {
	return uc.Products.Deactivate(ctx, id)
}

func (uc *CatalogUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.List(ctx)
}

func validateCategory(in CategoryInput) error {
	details := []string{}
	name := strings.TrimSpace(in.Name)
	if len(name) < 1 || len(name) > 100 {
		details = append(details, "name must be between 1 and 100 characters")
	}
	if len(in.Description) > 500 {
		details = append(details, "description must not exceed 500 characters")
	}
	if len(details) > 0 {
		return &domain.ValidationError{Details: details}
	}
	return nil
}

func (uc *CatalogUC) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	c := &domain.Category{ID: uuid.New(), Name: strings.TrimSpace(in.Name), Description: in.Description}
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CatalogUC) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*domain.Category, error) {
	c, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateCategory(in); err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Description = in.Description
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CatalogUC) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return uc.Categories.Delete(ctx, id)
}
