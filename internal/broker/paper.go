package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"saturn/internal/domain"
)

// Compile-time interface check.
var _ Broker = (*PaperBroker)(nil)

// PaperBroker implements the Broker interface for paper trading and
// backtesting. It tracks cash, positions, and orders in memory without making
// external API calls. Limit orders fill at their limit price; market orders
// fill at the last price recorded via SetMarketPrice.
type PaperBroker struct {
	mu         sync.Mutex
	cash       float64
	positions  map[string]*domain.Position
	orders     map[string]*domain.Order
	lastPrices map[string]float64
}

// NewPaperBroker creates a PaperBroker funded with startingCash.
func NewPaperBroker(startingCash float64) *PaperBroker {
	return &PaperBroker{
		cash:       startingCash,
		positions:  make(map[string]*domain.Position),
		orders:     make(map[string]*domain.Order),
		lastPrices: make(map[string]float64),
	}
}

// Name returns "paper".
func (b *PaperBroker) Name() string {
	return "paper"
}

// SetMarketPrice records the last traded price for a symbol. Market orders
// for the symbol fill at this price.
func (b *PaperBroker) SetMarketPrice(symbol string, price float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastPrices[symbol] = price
}

// SubmitOrder simulates immediate execution of the order and updates cash and
// positions accordingly.
func (b *PaperBroker) SubmitOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	price, err := b.fillPrice(order)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	filled := *order
	if filled.ID == "" {
		filled.ID = uuid.NewString()
	}
	filled.Status = domain.OrderStatusFilled
	filled.FilledQty = order.Qty
	filled.FilledAvgPrice = price
	filled.CreatedAt = now
	filled.UpdatedAt = now

	notional := order.Qty * price
	switch order.Side {
	case domain.OrderSideBuy:
		if notional > b.cash {
			return nil, fmt.Errorf("insufficient cash: order notional %.2f exceeds balance %.2f", notional, b.cash)
		}
		b.cash -= notional
		b.applyFill(order.Symbol, order.Qty, price)
	case domain.OrderSideSell:
		b.cash += notional
		b.applyFill(order.Symbol, -order.Qty, price)
	default:
		return nil, fmt.Errorf("unknown order side %q", order.Side)
	}

	b.orders[filled.ID] = &filled
	out := filled
	return &out, nil
}

// fillPrice determines the execution price for an order.
func (b *PaperBroker) fillPrice(order *domain.Order) (float64, error) {
	if order.Type == domain.OrderTypeLimit && order.LimitPrice > 0 {
		return order.LimitPrice, nil
	}
	if p, ok := b.lastPrices[order.Symbol]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("no market price recorded for %q", order.Symbol)
}

// applyFill adjusts the position for symbol by signed quantity delta at the
// given price.
func (b *PaperBroker) applyFill(symbol string, delta, price float64) {
	pos, ok := b.positions[symbol]
	if !ok {
		pos = &domain.Position{Symbol: symbol}
		b.positions[symbol] = pos
	}

	newQty := pos.Qty + delta
	if (pos.Qty >= 0) == (delta >= 0) && pos.Qty+delta != 0 {
		// Same direction: weighted average entry.
		total := pos.Qty*pos.AvgEntryPrice + delta*price
		pos.AvgEntryPrice = total / newQty
	} else if newQty != 0 && (newQty > 0) != (pos.Qty > 0) {
		// Flipped through zero: new entry at fill price.
		pos.AvgEntryPrice = price
	}
	pos.Qty = newQty
	pos.MarketValue = newQty * price
	if newQty >= 0 {
		pos.Side = domain.PositionSideLong
	} else {
		pos.Side = domain.PositionSideShort
	}
	if newQty == 0 {
		delete(b.positions, symbol)
	}
}

// CancelOrder marks the specified order as cancelled. Orders fill immediately
// in the paper broker, so only an unknown ID is an error.
func (b *PaperBroker) CancelOrder(_ context.Context, orderID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	o, ok := b.orders[orderID]
	if !ok {
		return fmt.Errorf("unknown order %q", orderID)
	}
	if o.Status == domain.OrderStatusFilled {
		return fmt.Errorf("order %q already filled", orderID)
	}
	o.Status = domain.OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// GetPositions returns copies of all simulated positions.
func (b *PaperBroker) GetPositions(_ context.Context) ([]domain.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	positions := make([]domain.Position, 0, len(b.positions))
	for _, p := range b.positions {
		positions = append(positions, *p)
	}
	return positions, nil
}

// GetAccount returns the simulated account snapshot. Equity is cash plus the
// value of open positions at their last known prices.
func (b *PaperBroker) GetAccount(_ context.Context) (*domain.AccountInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	equity := b.cash
	for sym, p := range b.positions {
		price := p.AvgEntryPrice
		if last, ok := b.lastPrices[sym]; ok {
			price = last
		}
		equity += p.Qty * price
	}

	return &domain.AccountInfo{
		Cash:        b.cash,
		Equity:      equity,
		BuyingPower: b.cash,
		Currency:    "USD",
	}, nil
}
