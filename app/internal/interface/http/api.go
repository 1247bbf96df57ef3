package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	domcart "example.com/susan-shop/app/internal/domain/cart"
	domcategory "example.com/susan-shop/app/internal/domain/category"
	domorder "example.com/susan-shop/app/internal/domain/order"
	domproduct "example.com/susan-shop/app/internal/domain/product"
	"example.com/susan-shop/app/internal/infra/security"
	cartuc "example.com/susan-shop/app/internal/usecase/cart"
	cataloguc "example.com/susan-shop/app/internal/usecase/catalog"
	checkoutuc "example.com/susan-shop/app/internal/usecase/checkout"
)

// CartCountHeader carries the badge count on every cart response.
const CartCountHeader = "X-Cart-Count"

type API struct {
	catalogSvc  *cataloguc.Service
	carts       *cartuc.Registry
	checkoutSvc *checkoutuc.Service
	sessionSvc  *security.SessionService
	logger      *slog.Logger
	corsOrigins []string
	validator   *validator.Validate
}

type Dependencies struct {
	CatalogService  *cataloguc.Service
	Carts           *cartuc.Registry
	CheckoutService *checkoutuc.Service
	SessionService  *security.SessionService
	Logger          *slog.Logger
	CORSOrigins     []string
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &API{
		catalogSvc:  deps.CatalogService,
		carts:       deps.Carts,
		checkoutSvc: deps.CheckoutService,
		sessionSvc:  deps.SessionService,
		logger:      logger,
		corsOrigins: origins,
		validator:   validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{CartCountHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", a.handleCreateSession)
		r.Get("/categories", a.handleListCategories)
		r.Get("/categories/{id}", a.handleGetCategory)
		r.Get("/products", a.handleListProducts)
		r.Get("/products/{id}", a.handleGetProduct)

		r.Group(func(pr chi.Router) {
			pr.Use(a.sessionMiddleware)
			pr.Delete("/me/session", a.handleEndSession)
			pr.Get("/me/cart", a.handleGetCart)
			pr.Delete("/me/cart", a.handleClearCart)
			pr.Post("/me/cart/items", a.handleAddCartItem)
			pr.Put("/me/cart/items/{productID}/{variantID}", a.handleUpdateCartItem)
			pr.Delete("/me/cart/items/{productID}/{variantID}", a.handleRemoveCartItem)
			pr.Post("/me/checkout", a.handleCheckout)
		})
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeCart(w http.ResponseWriter, status int, lines []domcart.Line, extra map[string]any) {
	body := mapCart(lines)
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set(CartCountHeader, strconv.FormatInt(domcart.ItemCount(lines), 10))
	writeJSON(w, status, body)
}

func mapCategory(c domcategory.Category) map[string]any {
	return map[string]any{
		"id":   c.ID,
		"name": c.Name,
	}
}

func mapVariant(v domproduct.Variant) map[string]any {
	return map[string]any{
		"id":           v.ID,
		"product_id":   v.ProductID,
		"variant_name": v.Name,
		"price":        v.Price,
		"quantity":     v.Quantity,
		"in_stock":     v.InStock(),
	}
}

func mapListing(l domproduct.Listing) map[string]any {
	variants := make([]map[string]any, 0, len(l.Variants))
	for _, v := range l.Variants {
		variants = append(variants, mapVariant(v))
	}

	var defaultVariantID any
	if v, ok := cataloguc.DefaultVariant(l); ok {
		defaultVariantID = v.ID
	}

	return map[string]any{
		"id":                 l.ID,
		"name":               l.Name,
		"cate_id":            l.CategoryID,
		"detail":             l.Detail,
		"image":              l.Image,
		"min_price":          cataloguc.MinPrice(l),
		"has_stock":          cataloguc.HasStock(l),
		"default_variant_id": defaultVariantID,
		"variants":           variants,
	}
}

func mapCart(lines []domcart.Line) map[string]any {
	items := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		items = append(items, map[string]any{
			"product_id":   l.Product.ID,
			"variant_id":   l.Variant.ID,
			"name":         l.Product.Name,
			"variant_name": l.Variant.Name,
			"image":        l.Product.Image,
			"price":        l.Variant.Price,
			"quantity":     l.Quantity,
			"subtotal":     l.Subtotal(),
		})
	}
	return map[string]any{
		"items":      items,
		"total":      domcart.Total(lines),
		"item_count": domcart.ItemCount(lines),
	}
}

func mapOrder(o *domorder.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, map[string]any{
			"product_id":   item.ProductID,
			"variant_id":   item.VariantID,
			"name":         item.Name,
			"variant_name": item.VariantName,
			"price":        item.Price,
			"quantity":     item.Quantity,
		})
	}

	return map[string]any{
		"id":             o.ID,
		"customer_name":  o.CustomerName,
		"phone":          o.Phone,
		"email":          o.Email,
		"address":        o.Address,
		"status":         o.Status,
		"payment_method": o.PaymentMethod,
		"total_amount":   o.TotalAmount,
		"created_at":     o.CreatedAt,
		"items":          items,
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domproduct.ErrProductNotFound),
		errors.Is(err, domproduct.ErrVariantNotFound),
		errors.Is(err, domcategory.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, security.ErrInvalidSession),
		errors.Is(err, cartuc.ErrEmptySession):
		respondError(w, http.StatusUnauthorized, err)
	case errors.Is(err, cartuc.ErrStorageUnavailable):
		respondError(w, http.StatusServiceUnavailable, err)
	case errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domproduct.ErrOutOfStock),
		errors.Is(err, domorder.ErrEmptyOrderItems),
		errors.Is(err, domorder.ErrInvalidPayment),
		errors.Is(err, domorder.ErrInvalidCustomer),
		errors.Is(err, domorder.ErrCheckoutValidation):
		// Lỗi nghiệp vụ khi checkout/cart → 422
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
