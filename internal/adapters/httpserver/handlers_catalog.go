package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"mercadito/internal/domain"
	"mercadito/internal/usecase"
)

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f := domain.ProductFilter{
			Search: r.URL.Query().Get("search"),
			Page:   queryInt(r, "page", 1),
			Limit:  queryInt(r, "limit", 20),
		}
		if raw := r.URL.Query().Get("category_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				writeError(w, domain.Validation("invalid category id"))
				return
			}
			f.CategoryID = id
		}
		list, total, err := s.catalog.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"products": list,
			"pagination": map[string]any{
				"page":  f.Page,
				"limit": f.Limit,
				"total": total,
			},
		})
	case http.MethodPost:
		if s.requireAdmin(w, r) == nil {
			return
		}
		var in usecase.ProductInput
		if !decodeBody(w, r, &in) {
			return
		}
		p, err := s.catalog.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"message": "Product created successfully",
			"product": p,
		})
	default:
		methodNotAllowed(w)
	}
}

// handleProductSubtree routes /products/categories[/...] and /products/{id}.
func (s *Server) handleProductSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/products/")
	if rest == "categories" || strings.HasPrefix(rest, "categories/") {
		s.handleCategories(w, r, strings.TrimPrefix(rest, "categories"))
		return
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.catalog.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"product": p})
	case http.MethodPut:
		if s.requireAdmin(w, r) == nil {
			return
		}
		var in usecase.ProductInput
		if !decodeBody(w, r, &in) {
			return
		}
		p, err := s.catalog.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Product updated successfully",
			"product": p,
		})
	case http.MethodDelete:
		if s.requireAdmin(w, r) == nil {
			return
		}
		if err := s.catalog.Deactivate(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Product deleted successfully"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request, rest string) {
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		switch r.Method {
		case http.MethodGet:
			list, err := s.catalog.ListCategories(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"categories": list})
		case http.MethodPost:
			if s.requireAdmin(w, r) == nil {
				return
			}
			var in usecase.CategoryInput
			if !decodeBody(w, r, &in) {
				return
			}
			c, err := s.catalog.CreateCategory(r.Context(), in)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{
				"message":  "Category created successfully",
				"category": c,
			})
		default:
			methodNotAllowed(w)
		}
		return
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	switch r.Method {
	case http.MethodPut:
		if s.requireAdmin(w, r) == nil {
			return
		}
		var in usecase.CategoryInput
		if !decodeBody(w, r, &in) {
			return
		}
		c, err := s.catalog.UpdateCategory(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":  "Category updated successfully",
			"category": c,
		})
	case http.MethodDelete:
		if s.requireAdmin(w, r) == nil {
			return
		}
		if err := s.catalog.DeleteCategory(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Category deleted successfully"})
	default:
		methodNotAllowed(w)
	}
}
