package mail

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	domorder "example.com/susan-shop/app/internal/domain/order"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// OrderMailer sends an order confirmation through a plain SMTP relay such
// as Mailpit.
type OrderMailer struct {
	addr string
	from string
	send sendFunc
}

func NewOrderMailer(addr, from string) *OrderMailer {
	return &OrderMailer{addr: addr, from: from, send: smtp.SendMail}
}

func (m *OrderMailer) OrderPlaced(ctx context.Context, o *domorder.Order) error {
	if o.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.send(m.addr, nil, m.from, []string{o.Email}, confirmation(m.from, o)); err != nil {
		return fmt.Errorf("send confirmation for order %s: %w", o.ID, err)
	}
	return nil
}

func confirmation(from string, o *domorder.Order) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", o.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", "Xác nhận đơn hàng #"+o.ID))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Xin chào %s,\r\n\r\n", o.CustomerName)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s (%s) x%d: %sđ\r\n", item.Name, item.VariantName, item.Quantity, item.Price.StringFixed(0))
	}
	fmt.Fprintf(&b, "\r\nTổng cộng: %sđ\r\n", o.TotalAmount.StringFixed(0))
	fmt.Fprintf(&b, "Thanh toán: %s\r\n", o.PaymentMethod)
	fmt.Fprintf(&b, "Giao đến: %s\r\n", o.Address)
	return []byte(b.String())
}
