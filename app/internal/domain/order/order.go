package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// StatusPending is the state every order is placed in.
const StatusPending Status = "PENDING"

type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "COD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCOD, PaymentBankTransfer:
		return true
	default:
		return false
	}
}

type Order struct {
	ID            string
	SessionID     string
	CustomerName  string
	Phone         string
	Email         string
	Address       string
	Status        Status
	PaymentMethod PaymentMethod
	TotalAmount   decimal.Decimal
	Items         []OrderItem
	CreatedAt     time.Time
}

type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	VariantID   string
	Name        string
	VariantName string
	Price       decimal.Decimal
	Quantity    int64
}
