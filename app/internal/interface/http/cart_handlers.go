package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domorder "example.com/susan-shop/app/internal/domain/order"
	domproduct "example.com/susan-shop/app/internal/domain/product"
	cartuc "example.com/susan-shop/app/internal/usecase/cart"
	checkoutuc "example.com/susan-shop/app/internal/usecase/checkout"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"omitempty,gt=0,max=10000"`
}

type updateCartItemRequest struct {
	Quantity *int64 `json:"quantity" validate:"required,max=10000"`
}

type checkoutRequest struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// openCart resolves the caller's cart. It writes the error response itself
// and returns nil when the request cannot continue.
func (a *API) openCart(w http.ResponseWriter, r *http.Request) *cartuc.Store {
	session := getSession(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return nil
	}

	store, err := a.carts.Open(r.Context(), session.ID)
	if err != nil {
		handleDomainError(w, err)
		return nil
	}
	return store
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}
	writeCart(w, http.StatusOK, store.Lines(), nil)
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, variant, err := a.catalogSvc.ResolveVariant(r.Context(), req.ProductID, req.VariantID)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if !variant.InStock() {
		handleDomainError(w, domproduct.ErrOutOfStock)
		return
	}

	result, err := store.AddItem(r.Context(), *product, *variant, req.Quantity)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeCart(w, http.StatusCreated, store.Lines(), map[string]any{
		"success": result.Success,
		"message": result.Message,
	})
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}

	var req updateCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	productID, variantID := chi.URLParam(r, "productID"), chi.URLParam(r, "variantID")
	if err := store.UpdateQuantity(r.Context(), productID, variantID, *req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	writeCart(w, http.StatusOK, store.Lines(), nil)
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}

	productID, variantID := chi.URLParam(r, "productID"), chi.URLParam(r, "variantID")
	if err := store.RemoveItem(r.Context(), productID, variantID); err != nil {
		handleDomainError(w, err)
		return
	}

	writeCart(w, http.StatusOK, store.Lines(), nil)
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}

	if err := store.Clear(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}

	writeCart(w, http.StatusOK, store.Lines(), nil)
}

func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	store := a.openCart(w, r)
	if store == nil {
		return
	}

	var req checkoutRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	order, err := a.checkoutSvc.Checkout(r.Context(), store, checkoutuc.Input{
		SessionID:     getSession(r.Context()).ID,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		PaymentMethod: domorder.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	w.Header().Set(CartCountHeader, strconv.FormatInt(store.ItemCount(), 10))
	writeJSON(w, http.StatusCreated, mapOrder(order))
}
