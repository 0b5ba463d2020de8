package broker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saturn/internal/domain"
	"saturn/internal/job"
	"saturn/pkg/algorithm"
)

func TestPaperBrokerMarketBuyAndSell(t *testing.T) {
	b := NewPaperBroker(10000)
	b.SetMarketPrice("AAPL", 100)
	ctx := context.Background()

	filled, err := b.SubmitOrder(ctx, &domain.Order{
		Symbol: "AAPL",
		Side:   domain.OrderSideBuy,
		Type:   domain.OrderTypeMarket,
		Qty:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFilled, filled.Status)
	assert.Equal(t, 10.0, filled.FilledQty)
	assert.Equal(t, 100.0, filled.FilledAvgPrice)
	assert.NotEmpty(t, filled.ID)

	positions, err := b.GetPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "AAPL", positions[0].Symbol)
	assert.Equal(t, 10.0, positions[0].Qty)
	assert.Equal(t, domain.PositionSideLong, positions[0].Side)

	account, err := b.GetAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, account.Cash)
	assert.Equal(t, 10000.0, account.Equity)

	_, err = b.SubmitOrder(ctx, &domain.Order{
		Symbol: "AAPL",
		Side:   domain.OrderSideSell,
		Type:   domain.OrderTypeMarket,
		Qty:    10,
	})
	require.NoError(t, err)

	positions, err = b.GetPositions(ctx)
	require.NoError(t, err)
	assert.Empty(t, positions)

	account, err = b.GetAccount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, account.Cash)
}

func TestPaperBrokerLimitOrderFillsAtLimit(t *testing.T) {
	b := NewPaperBroker(10000)

	filled, err := b.SubmitOrder(context.Background(), &domain.Order{
		Symbol:     "MSFT",
		Side:       domain.OrderSideBuy,
		Type:       domain.OrderTypeLimit,
		Qty:        5,
		LimitPrice: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, filled.FilledAvgPrice)
}

func TestPaperBrokerRejectsWithoutPrice(t *testing.T) {
	b := NewPaperBroker(10000)

	_, err := b.SubmitOrder(context.Background(), &domain.Order{
		Symbol: "TSLA",
		Side:   domain.OrderSideBuy,
		Type:   domain.OrderTypeMarket,
		Qty:    1,
	})
	require.Error(t, err)
}

func TestPaperBrokerRejectsInsufficientCash(t *testing.T) {
	b := NewPaperBroker(100)
	b.SetMarketPrice("AAPL", 100)

	_, err := b.SubmitOrder(context.Background(), &domain.Order{
		Symbol: "AAPL",
		Side:   domain.OrderSideBuy,
		Type:   domain.OrderTypeMarket,
		Qty:    2,
	})
	require.Error(t, err)

	account, err := b.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, account.Cash, "rejected order must not move cash")
}

func TestPaperBrokerCancelUnknownOrder(t *testing.T) {
	b := NewPaperBroker(0)

	err := b.CancelOrder(context.Background(), "missing")
	require.Error(t, err)
}

type initFailAlgo struct {
	*algorithm.Base
}

func (a *initFailAlgo) Initialize() error {
	return assert.AnError
}

func TestPaperConfiguratorFundsBrokerFromPortfolio(t *testing.T) {
	base := algorithm.NewBase()
	base.SetCash(25000)
	pc := NewPaperConfigurator(job.DefaultRunLimits())

	b, err := pc.Configure(base, job.NewLiveJob("run", ""))

	require.NoError(t, err)
	account, err := b.GetAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25000.0, account.Cash)
}

func TestPaperConfiguratorPropagatesInitializeError(t *testing.T) {
	pc := NewPaperConfigurator(job.DefaultRunLimits())

	b, err := pc.Configure(&initFailAlgo{Base: algorithm.NewBase()}, job.NewLiveJob("run", ""))

	require.Error(t, err)
	assert.Nil(t, b)
}

func TestAlpacaConfiguratorPropagatesInitializeError(t *testing.T) {
	ac := NewAlpacaConfigurator(job.DefaultRunLimits(), "key", "secret", "https://paper-api.alpaca.markets")

	b, err := ac.Configure(&initFailAlgo{Base: algorithm.NewBase()}, job.NewLiveJob("run", ""))

	require.Error(t, err)
	assert.Nil(t, b)
}
