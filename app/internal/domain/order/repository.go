package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
}
