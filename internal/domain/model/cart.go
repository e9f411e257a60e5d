package model

import (
	"github.com/shopspring/decimal"

	"github.com/cartwise/payments/internal/domain/valueobject"
)

// CartEntry is one order line, used for the optional L2/L3 item breakdown.
type CartEntry struct {
	ProductName    string
	Quantity       int64
	UnitPrice      decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
}

// Cart is the pre-checkout view of an order as far as request building is
// concerned. Cart persistence is owned by the commerce platform; this type is
// the narrow projection passed into the orchestration core.
type Cart struct {
	Code            string
	SiteID          string
	CurrencyCode    string
	TotalPrice      decimal.Decimal
	DeliveryCost    decimal.Decimal
	Customer        *Customer
	DeliveryAddress *Address
	Entries         []CartEntry

	paymentInfo PaymentInfo
}

// PaymentInfo returns the active payment info, or nil if none is configured.
func (c *Cart) PaymentInfo() PaymentInfo {
	return c.paymentInfo
}

// SetPaymentInfo installs info as the cart's payment method, replacing any
// previously configured one. A cart has at most one active PaymentInfo.
func (c *Cart) SetPaymentInfo(info PaymentInfo) {
	c.paymentInfo = info
}

// ClearPaymentInfo removes the active payment info.
func (c *Cart) ClearPaymentInfo() {
	c.paymentInfo = nil
}

// Order is the post-checkout counterpart of Cart. The reconciler advances its
// status as ledger entries resolve.
type Order struct {
	Code         string
	SiteID       string
	CurrencyCode string
	TotalPrice   decimal.Decimal
	Status       valueobject.OrderStatus

	paymentInfo  PaymentInfo
	transactions []*PaymentTransaction
}

// NewOrder creates an order in the CREATED status.
func NewOrder(code, siteID, currencyCode string, total decimal.Decimal, info PaymentInfo) *Order {
	return &Order{
		Code:         code,
		SiteID:       siteID,
		CurrencyCode: currencyCode,
		TotalPrice:   total,
		Status:       valueobject.OrderStatusCreated,
		paymentInfo:  info,
	}
}

// PaymentInfo returns the payment info the order was placed with.
func (o *Order) PaymentInfo() PaymentInfo {
	if o == nil {
		return nil
	}
	return o.paymentInfo
}

// Transactions returns the order's payment transactions.
func (o *Order) Transactions() []*PaymentTransaction {
	if o == nil {
		return nil
	}
	return o.transactions
}

// AddTransaction appends a transaction and wires its back-reference.
func (o *Order) AddTransaction(tx *PaymentTransaction) {
	tx.Order = o
	o.transactions = append(o.transactions, tx)
}
