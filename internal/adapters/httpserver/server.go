package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"mercadito/internal/domain"
	"mercadito/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	auth     *usecase.AuthUC
	catalog  *usecase.CatalogUC
	carts    *usecase.CartUC
	orders   *usecase.OrderUC
	identity domain.IdentityVerifier
	users    domain.UserRepo
	oauthCfg *oauth2.Config
}

func New(auth *usecase.AuthUC, catalog *usecase.CatalogUC, carts *usecase.CartUC, orders *usecase.OrderUC, id domain.IdentityVerifier, users domain.UserRepo, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		auth:     auth,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		identity: id,
		users:    users,
		oauthCfg: oauthCfg,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(60),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/auth/register", s.handleRegister)
	s.mux.HandleFunc("/auth/login", s.handleLogin)
	s.mux.HandleFunc("/auth/profile", s.handleProfile)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/products/", s.handleProductSubtree)

	s.mux.HandleFunc("/cart", s.handleCart)
	s.mux.HandleFunc("/cart/", s.handleCartItem)

	s.mux.HandleFunc("/orders", s.handleOrders)
	s.mux.HandleFunc("/orders/", s.handleOrderSubtree)

	s.mux.HandleFunc("/admin/export/orders", s.handleExportOrders)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the domain error taxonomy onto the JSON envelope
// {error, details?} with the documented status codes.
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	var stock *domain.InsufficientStockError
	var unavailable *domain.ProductUnavailableError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid input data", "details": ve.Details})
	case errors.As(err, &stock):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Insufficient stock for " + stock.ProductName})
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Product " + unavailable.ProductName + " is no longer available"})
	case errors.Is(err, domain.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Cart is empty"})
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Email already registered"})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "Admin access required"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
	default:
		log.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method not allowed"})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	if c, err := r.Cookie("access_token"); err == nil {
		return c.Value
	}
	return ""
}

// caller is the resolved request identity plus its profile row.
type caller struct {
	Identity *domain.Identity
	Profile  *domain.UserProfile
}

// authenticate resolves the bearer credential to an identity and loads the
// profile. A verifiable token without a profile row is an internal
// inconsistency, not a client error.
func (s *Server) authenticate(r *http.Request) (*caller, error) {
	tok := bearerToken(r)
	if tok == "" {
		return nil, domain.ErrUnauthenticated
	}
	id, err := s.identity.VerifyToken(r.Context(), tok)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	profile, err := s.users.FindByID(r.Context(), id.UserID)
	if err != nil {
		return nil, errors.New("profile lookup failed for authenticated user")
	}
	return &caller{Identity: id, Profile: profile}, nil
}

func (s *Server) requireAuth(w http.ResponseWriter, r *http.Request) *caller {
	c, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return nil
	}
	return c
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) *caller {
	c, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return nil
	}
	if !c.Profile.IsAdmin() {
		writeError(w, domain.ErrForbidden)
		return nil
	}
	return c
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return false
	}
	return true
}
