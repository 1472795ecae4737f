package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

var OrderStatuses = []OrderStatus{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled, OrderReturned,
}

// Cancellable is true only before the order ships.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderProcessing
}

func (s OrderStatus) Valid() bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Order struct {
	Base
	OrderID         string          `json:"orderId,omitempty"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	Buyer           OrderParty      `json:"buyer"`
	Product         OrderProduct    `json:"product"`
	Items           []OrderItem     `json:"items,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	OrderedAt       *time.Time      `json:"orderedAt,omitempty"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
}

type OrderParty struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type OrderProduct struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type OrderItem struct {
	Product  OrderProduct    `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Reference prefers the human order number over the document id.
func (o *Order) Reference() string {
	if o.OrderID != "" {
		return o.OrderID
	}
	return o.ID
}

// Amount prefers the order total, falling back to price x quantity.
func (o *Order) Amount() decimal.Decimal {
	if !o.TotalAmount.IsZero() {
		return o.TotalAmount
	}
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
