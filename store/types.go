// Package store is a small order-management domain used as fixture material
// by tests and by the fixturegen command.
package store

import (
	"errors"
	"strings"
	"time"

	"fixture-generator/primitive"

	"github.com/google/uuid"
)

// Product is an individual item available for sale.
// Prices are in cents.
type Product struct {
	ID          uuid.UUID      `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"price_cents"`
	Inventory   int32          `json:"inventory_count"`
	Grade       primitive.Char `json:"grade"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Customer places orders.
type Customer struct {
	ID       int64               `json:"id"`
	Email    string              `json:"email"`
	FullName string              `json:"full_name"`
	Address  *string             `json:"address"`
	IsActive bool                `json:"is_active"`
	Tags     map[string]struct{} `json:"tags"`

	// Password is never part of a fixture.
	Password string `json:"-" fixture:"-"`
}

var ErrInvalidEmail = errors.New("store: invalid email")

// NewCustomer validates the email before building a Customer.
func NewCustomer(email string) (*Customer, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidEmail
	}

	return &Customer{Email: email, IsActive: true}, nil
}

// Order is a transaction made by a customer.
type Order struct {
	ID         int64             `json:"id"`
	CustomerID int64             `json:"customer_id"`
	Status     OrderStatus       `json:"status"`
	TotalCents int64             `json:"total_cents"`
	Items      []OrderItem       `json:"items"`
	Notes      map[string]string `json:"notes"`
	OrderedAt  time.Time         `json:"ordered_at"`
	Window     time.Duration     `json:"delivery_window"`
}

// OrderItem is a product line within an order. It snapshots the price at
// the time of purchase.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int16     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Category forms a tree through Parent.
type Category struct {
	Name   string    `json:"name"`
	Parent *Category `json:"parent"`
}

// Shelf is a fixed-size storage location.
type Shelf struct {
	Code  [3]primitive.Char `json:"code"`
	Slots [4]int8           `json:"slots"`
}
