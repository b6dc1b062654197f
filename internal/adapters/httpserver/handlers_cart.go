package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mercadito/internal/domain"
)

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	c := s.requireAuth(w, r)
	if c == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		cart, err := s.carts.Get(r.Context(), c.Identity.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cart)
	case http.MethodPost:
		var in struct {
			ProductID uuid.UUID `json:"product_id"`
			Quantity  int       `json:"quantity"`
		}
		if !decodeBody(w, r, &in) {
			return
		}
		if in.ProductID == uuid.Nil {
			writeError(w, domain.Validation("invalid product id"))
			return
		}
		item, err := s.carts.Add(r.Context(), c.Identity.UserID, in.ProductID, in.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":   "Product added to cart successfully",
			"cart_item": item,
		})
	case http.MethodDelete:
		if err := s.carts.Clear(r.Context(), c.Identity.UserID); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Cart cleared successfully"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCartItem(w http.ResponseWriter, r *http.Request) {
	c := s.requireAuth(w, r)
	if c == nil {
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/cart/"))
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	switch r.Method {
	case http.MethodPut:
		var in struct {
			Quantity int `json:"quantity"`
		}
		if !decodeBody(w, r, &in) {
			return
		}
		item, err := s.carts.Update(r.Context(), c.Identity.UserID, id, in.Quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Cart updated successfully",
			"cart_item": item,
		})
	case http.MethodDelete:
		if err := s.carts.Remove(r.Context(), c.Identity.UserID, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Product removed from cart successfully"})
	default:
		methodNotAllowed(w)
	}
}
