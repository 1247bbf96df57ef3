package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domcategory "example.com/susan-shop/app/internal/domain/category"
	domproduct "example.com/susan-shop/app/internal/domain/product"
)

type mockProductRepository struct {
	products    []domproduct.Product
	variants    []domproduct.Variant
	listErr     error
	variantsErr error
}

func (m *mockProductRepository) List(ctx context.Context) ([]domproduct.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domproduct.Product(nil), m.products...), nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			cloned := p
			return &cloned, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}

func (m *mockProductRepository) ListVariants(ctx context.Context) ([]domproduct.Variant, error) {
	if m.variantsErr != nil {
		return nil, m.variantsErr
	}
	return append([]domproduct.Variant(nil), m.variants...), nil
}

func (m *mockProductRepository) GetVariant(ctx context.Context, id string) (*domproduct.Variant, error) {
	for _, v := range m.variants {
		if v.ID == id {
			cloned := v
			return &cloned, nil
		}
	}
	return nil, domproduct.ErrVariantNotFound
}

type mockCategoryRepository struct {
	categories []domcategory.Category
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]domcategory.Category, error) {
	return m.categories, nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*domcategory.Category, error) {
	for _, c := range m.categories {
		if c.ID == id {
			cloned := c
			return &cloned, nil
		}
	}
	return nil, domcategory.ErrCategoryNotFound
}

func newTestService() (*Service, *mockProductRepository) {
	products := &mockProductRepository{
		products: []domproduct.Product{
			{ID: "1", Name: "Áo thun", CategoryID: "A"},
			{ID: "2", Name: "Cốc sứ", CategoryID: "B"},
		},
		variants: []domproduct.Variant{
			{ID: "v1", ProductID: "1", Name: "S", Price: dec(10000), Quantity: 2},
			{ID: "v2", ProductID: "1", Name: "M", Price: dec(12000), Quantity: 0},
		},
	}
	categories := &mockCategoryRepository{
		categories: []domcategory.Category{{ID: "A", Name: "Áo"}, {ID: "B", Name: "Cốc"}},
	}
	return NewService(products, categories, nil), products
}

func TestListListings(t *testing.T) {
	svc, _ := newTestService()

	listings, err := svc.ListListings(context.Background())

	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids(listings))
	require.Len(t, listings[0].Variants, 2)
	require.Empty(t, listings[1].Variants)
}

func TestListListings_VariantFailureDegradesToNoVariants(t *testing.T) {
	svc, repo := newTestService()
	repo.variantsErr = errors.New("timeout")

	listings, err := svc.ListListings(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		require.Empty(t, l.Variants)
		require.False(t, HasStock(l))
	}
}

func TestListListings_ProductFailure(t *testing.T) {
	svc, repo := newTestService()
	repo.listErr = errors.New("boom")

	_, err := svc.ListListings(context.Background())

	require.EqualError(t, err, "boom")
}

func TestBrowse(t *testing.T) {
	svc, _ := newTestService()

	listings, err := svc.Browse(context.Background(), Criteria{CategoryID: "A", MaxPrice: ptr(dec(20000))})

	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids(listings))
}

func TestGetListing(t *testing.T) {
	svc, _ := newTestService()

	l, err := svc.GetListing(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "Áo thun", l.Name)
	require.Len(t, l.Variants, 2)

	_, err = svc.GetListing(context.Background(), "404")
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)
}

func TestResolveVariant(t *testing.T) {
	svc, _ := newTestService()

	p, v, err := svc.ResolveVariant(context.Background(), "1", "v2")
	require.NoError(t, err)
	require.Equal(t, "1", p.ID)
	require.Equal(t, "M", v.Name)

	_, _, err = svc.ResolveVariant(context.Background(), "2", "v1")
	require.ErrorIs(t, err, domproduct.ErrVariantNotFound)

	_, _, err = svc.ResolveVariant(context.Background(), "1", "v404")
	require.ErrorIs(t, err, domproduct.ErrVariantNotFound)
}

func TestCategories(t *testing.T) {
	svc, _ := newTestService()

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)

	c, err := svc.GetCategory(context.Background(), "B")
	require.NoError(t, err)
	require.Equal(t, "Cốc", c.Name)

	_, err = svc.GetCategory(context.Background(), "Z")
	require.ErrorIs(t, err, domcategory.ErrCategoryNotFound)
}
