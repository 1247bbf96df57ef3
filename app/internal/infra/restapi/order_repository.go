package restapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domorder "example.com/susan-shop/app/internal/domain/order"
)

type orderRecord struct {
	ID            string          `json:"id,omitempty"`
	SessionID     string          `json:"session_id"`
	CustomerName  string          `json:"customer_name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	Address       string          `json:"address"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

type orderDetailRecord struct {
	ID          string          `json:"id,omitempty"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name"`
	VariantName string          `json:"variant_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

// OrderRepository writes an order header to /orders and one record per
// line to /order-details.
type OrderRepository struct {
	client *Client
}

func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{client: client}
}

func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	var created orderRecord
	err := r.client.Post(ctx, Orders, orderRecord{
		SessionID:     o.SessionID,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Email:         o.Email,
		Address:       o.Address,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Total:         o.TotalAmount,
		CreatedAt:     o.CreatedAt,
	}, &created)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	result := *o
	result.ID = created.ID
	result.Items = make([]domorder.OrderItem, 0, len(o.Items))

	for _, item := range o.Items {
		var detail orderDetailRecord
		err := r.client.Post(ctx, OrderDetails, orderDetailRecord{
			OrderID:     created.ID,
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.Name,
			VariantName: item.VariantName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		}, &detail)
		if err != nil {
			err = fmt.Errorf("create order %s detail: %w", created.ID, err)
			return nil, errors.Join(err, r.rollback(ctx, created.ID, result.Items))
		}

		item.ID = detail.ID
		item.OrderID = created.ID
		result.Items = append(result.Items, item)
	}

	return &result, nil
}

// rollback removes the details already written and then the order header,
// so a failed checkout leaves nothing behind upstream.
func (r *OrderRepository) rollback(ctx context.Context, orderID string, items []domorder.OrderItem) error {
	var errs []error
	for _, item := range items {
		if err := r.client.Delete(ctx, OrderDetails, item.ID); err != nil {
			errs = append(errs, fmt.Errorf("rollback order detail %s: %w", item.ID, err))
		}
	}
	if err := r.client.Delete(ctx, Orders, orderID); err != nil {
		errs = append(errs, fmt.Errorf("rollback order %s: %w", orderID, err))
	}
	return errors.Join(errs...)
}
