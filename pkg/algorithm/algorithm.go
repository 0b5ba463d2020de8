// Package algorithm defines the capability set that user-compiled trading
// algorithms must implement, plus a Base implementation that plugin authors
// embed to get sensible defaults.
package algorithm

import "time"

// Algorithm is the interface that all loaded algorithms must implement. The
// setup layer drives it exactly once per run, before execution begins.
type Algorithm interface {
	// Initialize performs the algorithm's own one-time setup: choosing dates,
	// seeding cash, and requesting data subscriptions. It runs after limits
	// have been applied and may fail with a domain error (invalid
	// configuration, missing subscription, ...).
	Initialize() error

	// Portfolio returns the algorithm's portfolio, including its cash book.
	Portfolio() *Portfolio

	// StartDate returns the first date of the algorithm's requested period.
	StartDate() time.Time

	// EndDate returns the last date of the algorithm's requested period.
	EndDate() time.Time

	// SetLimits caps the number of securities, data subscriptions, and orders
	// the algorithm may use. Applied before Initialize runs.
	SetLimits(maxSecurities, maxSubscriptions, maxOrders int)

	// Subscriptions returns the algorithm's data subscription manager.
	Subscriptions() *SubscriptionManager
}

// Compile-time interface check.
var _ Algorithm = (*Base)(nil)

// Base is a ready-to-embed Algorithm implementation. Plugin authors embed it
// and override Initialize; everything else works out of the box.
type Base struct {
	portfolio     *Portfolio
	subscriptions *SubscriptionManager

	startDate time.Time
	endDate   time.Time

	maxSecurities    int
	maxSubscriptions int
	maxOrders        int
}

// NewBase creates a Base algorithm with an empty portfolio and no
// subscriptions.
func NewBase() *Base {
	return &Base{
		portfolio:     NewPortfolio("USD"),
		subscriptions: NewSubscriptionManager(),
	}
}

// Initialize is a no-op; embedders override it.
func (b *Base) Initialize() error {
	return nil
}

// Portfolio returns the algorithm's portfolio.
func (b *Base) Portfolio() *Portfolio {
	return b.portfolio
}

// StartDate returns the configured period start.
func (b *Base) StartDate() time.Time {
	return b.startDate
}

// EndDate returns the configured period end.
func (b *Base) EndDate() time.Time {
	return b.endDate
}

// SetStartDate sets the first date of the requested period.
func (b *Base) SetStartDate(year int, month time.Month, day int) {
	b.startDate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SetEndDate sets the last date of the requested period.
func (b *Base) SetEndDate(year int, month time.Month, day int) {
	b.endDate = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SetCash seeds the portfolio's account-currency cash balance.
func (b *Base) SetCash(amount float64) {
	b.portfolio.SetCash(b.portfolio.AccountCurrency(), amount)
}

// SetLimits records the caps applied by the setup layer.
func (b *Base) SetLimits(maxSecurities, maxSubscriptions, maxOrders int) {
	b.maxSecurities = maxSecurities
	b.maxSubscriptions = maxSubscriptions
	b.maxOrders = maxOrders
}

// Limits returns the currently applied caps.
func (b *Base) Limits() (maxSecurities, maxSubscriptions, maxOrders int) {
	return b.maxSecurities, b.maxSubscriptions, b.maxOrders
}

// Subscriptions returns the algorithm's data subscription manager.
func (b *Base) Subscriptions() *SubscriptionManager {
	return b.subscriptions
}
