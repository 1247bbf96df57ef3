package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	cataloguc "example.com/susan-shop/app/internal/usecase/catalog"
)

func (a *API) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.catalogSvc.ListCategories(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, mapCategory(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := a.catalogSvc.GetCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCategory(*c))
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	listings, err := a.catalogSvc.Browse(r.Context(), criteria)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := make([]map[string]any, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, mapListing(l))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": resp})
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	listing, err := a.catalogSvc.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := mapListing(*listing)
	// product detail preselects the first variant
	var selected any
	if len(listing.Variants) > 0 {
		selected = listing.Variants[0].ID
	}
	resp["selected_variant_id"] = selected
	writeJSON(w, http.StatusOK, resp)
}

// parseCriteria reads category_id, min_price and max_price. A missing
// max_price leaves the range open; crossed bounds are clamped like the slider.
func parseCriteria(r *http.Request) (cataloguc.Criteria, error) {
	q := r.URL.Query()
	c := cataloguc.Criteria{
		CategoryID: q.Get("category_id"),
		MinPrice:   decimal.Zero,
	}

	if v := q.Get("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c, fmt.Errorf("invalid min_price: %w", err)
		}
		c.MinPrice = d
	}
	if v := q.Get("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c, fmt.Errorf("invalid max_price: %w", err)
		}
		c.MaxPrice = &d
	}

	return c.Normalize(), nil
}
