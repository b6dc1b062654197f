package app

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"mercadito/internal/adapters/httpserver"
	"mercadito/internal/adapters/identity"
	"mercadito/internal/adapters/repo/postgres"
	"mercadito/internal/domain"
	"mercadito/internal/usecase"
)

type App struct {
	DB       *gorm.DB
	Identity *identity.Provider
	Users    domain.UserRepo

	AuthUC    *usecase.AuthUC
	CatalogUC *usecase.CatalogUC
	CartUC    *usecase.CartUC
	OrderUC   *usecase.OrderUC

	OAuthConfig *oauth2.Config
}

func NewApp(db *gorm.DB) (*App, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = os.Getenv("SECRET_KEY")
	}
	if secret == "" {
		secret = "dev-insecure-secret"
	}

	idp := identity.NewProvider(db, []byte(secret))
	users := postgres.NewUserRepo(db)
	products := postgres.NewProductRepo(db)
	categories := postgres.NewCategoryRepo(db)
	carts := postgres.NewCartRepo(db)
	orders := postgres.NewOrderRepo(db)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	app := &App{DB: db, Identity: idp, Users: users, OAuthConfig: oauthCfg}
	app.AuthUC = &usecase.AuthUC{Identity: idp, Users: users}
	app.CatalogUC = &usecase.CatalogUC{Products: products, Categories: categories}
	app.CartUC = &usecase.CartUC{Carts: carts, Products: products}
	app.OrderUC = &usecase.OrderUC{Orders: orders, Carts: carts, Products: products}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.AuthUC, a.CatalogUC, a.CartUC, a.OrderUC, a.Identity, a.Users, a.OAuthConfig)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&identity.User{},
		&domain.UserProfile{},
		&domain.Category{},
		&domain.Product{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)").Error

	if err := seedCategories(a.DB); err != nil {
		return err
	}
	return a.seedAdmin()
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	cats := []domain.Category{
		{ID: uuid.New(), Name: "Beverages", Description: "Drinks, juices and water"},
		{ID: uuid.New(), Name: "Groceries", Description: "Pantry staples"},
		{ID: uuid.New(), Name: "Home", Description: "Household goods"},
	}
	return db.Create(&cats).Error
}

// seedAdmin promotes or creates the bootstrap admin named by ADMIN_EMAIL /
// ADMIN_PASSWORD. Role changes otherwise happen only out-of-band.
func (a *App) seedAdmin() error {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		return nil
	}
	ctx := context.Background()
	var id *domain.Identity
	var err error
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		id, err = a.Identity.CreateUser(ctx, email, pass)
		if errors.Is(err, domain.ErrEmailTaken) {
			id, _, err = a.Identity.EnsureUser(ctx, email)
		}
	} else {
		id, _, err = a.Identity.EnsureUser(ctx, email)
	}
	if err != nil {
		return err
	}
	profile, err := a.Users.FindByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return a.Users.Create(ctx, &domain.UserProfile{ID: id.UserID, FullName: "Administrator", Role: domain.RoleAdmin})
		}
		return err
	}
	if profile.Role != domain.RoleAdmin {
		profile.Role = domain.RoleAdmin
		return a.Users.Update(ctx, profile)
	}
	return nil
}
