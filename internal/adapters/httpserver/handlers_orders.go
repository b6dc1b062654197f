package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mercadito/internal/domain"
	"mercadito/internal/usecase"
)

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	c := s.requireAuth(w, r)
	if c == nil {
		return
	}
	switch r.Method {
	case http.MethodGet:
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 10)
		list, total, err := s.orders.List(r.Context(), c.Profile, page, limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"orders": list,
			"pagination": map[string]any{
				"page":  page,
				"limit": limit,
				"total": total,
			},
		})
	case http.MethodPost:
		var in usecase.CreateOrderInput
		if !decodeBody(w, r, &in) {
			return
		}
		order, err := s.orders.Create(r.Context(), c.Identity.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Order created successfully",
			"order":   order,
		})
	default:
		methodNotAllowed(w)
	}
}

// handleOrderSubtree routes /orders/{id} and /orders/{id}/status.
func (s *Server) handleOrderSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/orders/")
	if idStr, ok := strings.CutSuffix(rest, "/status"); ok {
		s.handleOrderStatus(w, r, idStr)
		return
	}
	c := s.requireAuth(w, r)
	if c == nil {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	order, err := s.orders.Get(r.Context(), c.Profile, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (s *Server) handleOrderStatus(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	if s.requireAdmin(w, r) == nil {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	order, err := s.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(in.Status))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
