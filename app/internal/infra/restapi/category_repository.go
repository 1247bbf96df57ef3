package restapi

import (
	"context"

	domcategory "example.com/susan-shop/app/internal/domain/category"
)

type CategoryRepository struct {
	client *Client
}

func NewCategoryRepository(client *Client) *CategoryRepository {
	return &CategoryRepository{client: client}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domcategory.Category, error) {
	var categories []domcategory.Category
	if err := r.client.Get(ctx, Categories, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domcategory.Category, error) {
	var c domcategory.Category
	if err := r.client.Get(ctx, Categories, id, &c); err != nil {
		if IsNotFound(err) {
			return nil, domcategory.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}
