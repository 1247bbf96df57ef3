package restapi

import (
	"context"

	domproduct "example.com/susan-shop/app/internal/domain/product"
)

type ProductRepository struct {
	client *Client
}

func NewProductRepository(client *Client) *ProductRepository {
	return &ProductRepository{client: client}
}

func (r *ProductRepository) List(ctx context.Context) ([]domproduct.Product, error) {
	var products []domproduct.Product
	if err := r.client.Get(ctx, Products, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	var p domproduct.Product
	if err := r.client.Get(ctx, Products, id, &p); err != nil {
		if IsNotFound(err) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListVariants(ctx context.Context) ([]domproduct.Variant, error) {
	var variants []domproduct.Variant
	if err := r.client.Get(ctx, ProductVariants, "", &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *ProductRepository) GetVariant(ctx context.Context, id string) (*domproduct.Variant, error) {
	var v domproduct.Variant
	if err := r.client.Get(ctx, ProductVariants, id, &v); err != nil {
		if IsNotFound(err) {
			return nil, domproduct.ErrVariantNotFound
		}
		return nil, err
	}
	return &v, nil
}
