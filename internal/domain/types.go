// Package domain defines the core data types shared across the saturn
// platform: orders, positions, and account snapshots exchanged with
// brokerages.
package domain

import "time"

// OrderSide indicates whether an order buys or sells.
type OrderSide string

// Order side constants.
const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderType indicates how an order is priced.
type OrderType string

// Order type constants.
const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

// OrderStatus tracks an order through its lifecycle.
type OrderStatus string

// Order status constants.
const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusFilled    OrderStatus = "filled"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRejected  OrderStatus = "rejected"
)

// Order represents a single order submitted to a brokerage.
type Order struct {
	ID             string
	Symbol         string
	Side           OrderSide
	Type           OrderType
	Status         OrderStatus
	Qty            float64
	LimitPrice     float64
	FilledQty      float64
	FilledAvgPrice float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PositionSide indicates the direction of a held position.
type PositionSide string

// Position side constants.
const (
	PositionSideLong  PositionSide = "long"
	PositionSideShort PositionSide = "short"
)

// Position represents a holding in a single symbol.
type Position struct {
	Symbol        string
	Qty           float64
	Side          PositionSide
	AvgEntryPrice float64
	MarketValue   float64
}

// AccountInfo is a snapshot of an account's financial metrics.
type AccountInfo struct {
	Cash        float64
	Equity      float64
	BuyingPower float64
	Currency    string
}
