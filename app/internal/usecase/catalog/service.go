package catalog

import (
	"context"
	"log/slog"

	domcategory "example.com/susan-shop/app/internal/domain/category"
	domproduct "example.com/susan-shop/app/internal/domain/product"
)

type Service struct {
	products   domproduct.Repository
	categories domcategory.Repository
	logger     *slog.Logger
}

func NewService(products domproduct.Repository, categories domcategory.Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// ListListings loads every product with its variants attached. Products are
// still returned, without variants, when the variants cannot be loaded.
func (s *Service) ListListings(ctx context.Context) ([]domproduct.Listing, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	variants, err := s.products.ListVariants(ctx)
	if err != nil {
		s.logger.Error("loading variants", "err", err)
		variants = nil
	}

	return domproduct.AttachVariants(products, variants), nil
}

func (s *Service) Browse(ctx context.Context, c Criteria) ([]domproduct.Listing, error) {
	listings, err := s.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilter(listings, c), nil
}

func (s *Service) GetListing(ctx context.Context, id string) (*domproduct.Listing, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	variants, err := s.products.ListVariants(ctx)
	if err != nil {
		return nil, err
	}

	return &domproduct.Listing{
		Product:  *p,
		Variants: domproduct.VariantsOf(p.ID, variants),
	}, nil
}

// ResolveVariant fetches fresh snapshots of a product and one of its
// variants for adding to a cart.
func (s *Service) ResolveVariant(ctx context.Context, productID, variantID string) (*domproduct.Product, *domproduct.Variant, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	v, err := s.products.GetVariant(ctx, variantID)
	if err != nil {
		return nil, nil, err
	}
	if v.ProductID != p.ID {
		return nil, nil, domproduct.ErrVariantNotFound
	}

	return p, v, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domcategory.Category, error) {
	return s.categories.List(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*domcategory.Category, error) {
	return s.categories.GetByID(ctx, id)
}
