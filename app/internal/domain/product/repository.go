package product

import "context"

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	ListVariants(ctx context.Context) ([]Variant, error)
	GetVariant(ctx context.Context, id string) (*Variant, error)
}
