package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domcart "example.com/susan-shop/app/internal/domain/cart"
	domorder "example.com/susan-shop/app/internal/domain/order"
	domproduct "example.com/susan-shop/app/internal/domain/product"
)

// Cart is the part of a cart store checkout needs.
type Cart interface {
	Lines() []domcart.Line
	Clear(ctx context.Context) error
}

type VariantReader interface {
	GetVariant(ctx context.Context, id string) (*domproduct.Variant, error)
}

// Notifier is told about every placed order.
type Notifier interface {
	OrderPlaced(ctx context.Context, o *domorder.Order) error
}

type Input struct {
	SessionID     string
	CustomerName  string
	Phone         string
	Email         string
	Address       string
	PaymentMethod domorder.PaymentMethod
}

type Service struct {
	variants  VariantReader
	orderRepo domorder.Repository
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(variants VariantReader, orderRepo domorder.Repository, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		variants:  variants,
		orderRepo: orderRepo,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Checkout(ctx context.Context, cart Cart, in Input) (*domorder.Order, error) {
	if !in.PaymentMethod.IsValid() {
		return nil, domorder.ErrInvalidPayment
	}
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if in.CustomerName == "" || in.Phone == "" || in.Address == "" {
		return nil, domorder.ErrInvalidCustomer
	}

	lines := cart.Lines()
	if len(lines) == 0 {
		return nil, domorder.ErrEmptyOrderItems
	}

	items := make([]domorder.OrderItem, 0, len(lines))
	for _, l := range lines {
		current, err := s.variants.GetVariant(ctx, l.Variant.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: variant %s: %v", domorder.ErrCheckoutValidation, l.Variant.ID, err)
		}
		if current.Quantity < l.Quantity {
			return nil, fmt.Errorf("%w: %s (%s) has %d left", domorder.ErrCheckoutValidation, l.Product.Name, l.Variant.Name, current.Quantity)
		}
		items = append(items, domorder.OrderItem{
			ProductID:   l.Product.ID,
			VariantID:   l.Variant.ID,
			Name:        l.Product.Name,
			VariantName: l.Variant.Name,
			Price:       l.Variant.Price,
			Quantity:    l.Quantity,
		})
	}

	order, err := s.orderRepo.Create(ctx, &domorder.Order{
		SessionID:     in.SessionID,
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		Email:         strings.TrimSpace(in.Email),
		Address:       in.Address,
		Status:        domorder.StatusPending,
		PaymentMethod: in.PaymentMethod,
		TotalAmount:   domcart.Total(lines),
		Items:         items,
		CreatedAt:     s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// the order exists upstream now, so a stale cart is only logged
	if err := cart.Clear(ctx); err != nil {
		s.logger.Error("cart not cleared after checkout", "order_id", order.ID, "session_id", in.SessionID, "err", err)
	}

	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, order); err != nil {
			s.logger.Warn("order confirmation not sent", "order_id", order.ID, "err", err)
		}
	}

	return order, nil
}
