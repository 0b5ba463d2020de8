package broker

import (
	"context"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/shopspring/decimal"

	"saturn/internal/domain"
	"saturn/internal/util"
)

// Compile-time interface check.
var _ Broker = (*AlpacaBroker)(nil)

// AlpacaBroker implements the Broker interface using the Alpaca brokerage
// API. Calls are rate limited and transient failures are retried.
type AlpacaBroker struct {
	client  *alpaca.Client
	limiter *util.RateLimiter
}

// NewAlpacaBroker creates an AlpacaBroker configured with the given
// credentials and API endpoint.
func NewAlpacaBroker(apiKey, apiSecret, baseURL string) *AlpacaBroker {
	return &AlpacaBroker{
		client: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		limiter: util.NewRateLimiter(200),
	}
}

// Name returns "alpaca".
func (b *AlpacaBroker) Name() string {
	return "alpaca"
}

// SubmitOrder sends an order to the Alpaca API for execution.
func (b *AlpacaBroker) SubmitOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	qty := decimal.NewFromFloat(order.Qty)
	req := alpaca.PlaceOrderRequest{
		Symbol:      order.Symbol,
		Qty:         &qty,
		Side:        alpaca.Side(order.Side),
		Type:        alpaca.OrderType(order.Type),
		TimeInForce: alpaca.Day,
	}
	if order.Type == domain.OrderTypeLimit {
		limit := decimal.NewFromFloat(order.LimitPrice)
		req.LimitPrice = &limit
	}

	var placed *alpaca.Order
	err := util.Retry(ctx, 3, 250*time.Millisecond, func() error {
		var err error
		placed, err = b.client.PlaceOrder(req)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := *order
	out.ID = placed.ID
	out.Status = domain.OrderStatus(placed.Status)
	out.FilledQty = placed.FilledQty.InexactFloat64()
	if placed.FilledAvgPrice != nil {
		out.FilledAvgPrice = placed.FilledAvgPrice.InexactFloat64()
	}
	out.CreatedAt = placed.CreatedAt
	out.UpdatedAt = placed.UpdatedAt
	return &out, nil
}

// CancelOrder requests cancellation of an open order via the Alpaca API.
func (b *AlpacaBroker) CancelOrder(ctx context.Context, orderID string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}
	return util.Retry(ctx, 3, 250*time.Millisecond, func() error {
		return b.client.CancelOrder(orderID)
	})
}

// GetPositions returns all current positions from the Alpaca account.
func (b *AlpacaBroker) GetPositions(ctx context.Context) ([]domain.Position, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var raw []alpaca.Position
	err := util.Retry(ctx, 3, 250*time.Millisecond, func() error {
		var err error
		raw, err = b.client.GetPositions()
		return err
	})
	if err != nil {
		return nil, err
	}

	positions := make([]domain.Position, 0, len(raw))
	for _, p := range raw {
		pos := domain.Position{
			Symbol:        p.Symbol,
			Qty:           p.Qty.InexactFloat64(),
			Side:          domain.PositionSide(p.Side),
			AvgEntryPrice: p.AvgEntryPrice.InexactFloat64(),
		}
		if p.MarketValue != nil {
			pos.MarketValue = p.MarketValue.InexactFloat64()
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// GetAccount returns the current account information from the Alpaca API.
func (b *AlpacaBroker) GetAccount(ctx context.Context) (*domain.AccountInfo, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var acct *alpaca.Account
	err := util.Retry(ctx, 3, 250*time.Millisecond, func() error {
		var err error
		acct, err = b.client.GetAccount()
		return err
	})
	if err != nil {
		return nil, err
	}

	return &domain.AccountInfo{
		Cash:        acct.Cash.InexactFloat64(),
		Equity:      acct.Equity.InexactFloat64(),
		BuyingPower: acct.BuyingPower.InexactFloat64(),
		Currency:    acct.Currency,
	}, nil
}
