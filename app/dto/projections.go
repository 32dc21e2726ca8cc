// Package dto holds the read-only projections returned by the query
// service. None of them map to a table.
package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderProduct is one product line of an order.
type OrderProduct struct {
	OrderID   uint            `json:"orderId"`
	Product   string          `json:"product"`
	Price     decimal.Decimal `json:"price"`
	OrderDate time.Time       `json:"orderDate"`
}

type OrderCount struct {
	OrderID    uint  `json:"orderId"`
	TotalCount int64 `json:"totalCount"`
}

type AveragePrice struct {
	AveragePrice decimal.Decimal `json:"averagePrice"`
}

// TopClient is the client with the most orders.
type TopClient struct {
	ClientID   uint   `json:"clientId"`
	Name       string `json:"name"`
	OrderCount int64  `json:"orderCount"`
}

// OrderLine is an order joined with its product and client.
type OrderLine struct {
	OrderID   uint            `json:"orderId"`
	Product   string          `json:"product"`
	Price     decimal.Decimal `json:"price"`
	Client    string          `json:"client"`
	OrderDate time.Time       `json:"orderDate"`
}

type ClientProducts struct {
	ClientName   string   `json:"clientName"`
	ProductNames []string `json:"productNames"`
}

// OrderDetail is a single order with its client and product resolved.
type OrderDetail struct {
	OrderID     uint            `json:"orderId"`
	Client      string          `json:"client"`
	ClientEmail string          `json:"clientEmail"`
	Product     string          `json:"product"`
	Price       decimal.Decimal `json:"price"`
	OrderDate   time.Time       `json:"orderDate"`
}

type ClientOrderTotal struct {
	ClientName string `json:"clientName"`
	TotalCount int64  `json:"totalCount"`
}

type ClientSpend struct {
	ClientName string          `json:"clientName"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}
