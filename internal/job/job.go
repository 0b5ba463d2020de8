// Package job defines the run-configuration descriptors exchanged between the
// setup layer and the execution scheduler. A descriptor is tagged with its
// run mode at construction; the setup layer mutates it in place and never
// touches fields belonging to the other mode.
package job

import "time"

// Mode identifies how a run executes.
type Mode string

// Run mode constants.
const (
	ModeBacktest Mode = "backtest"
	ModeLive     Mode = "live"
)

// TransactionEndpoint selects the order-transaction handler variant.
type TransactionEndpoint string

// Transaction endpoint bindings.
const (
	TransactionBacktesting TransactionEndpoint = "backtesting"
	TransactionBrokerage   TransactionEndpoint = "brokerage"
)

// ResultEndpoint selects the result-reporting handler variant.
type ResultEndpoint string

// Result endpoint bindings.
const (
	ResultBacktesting ResultEndpoint = "backtesting"
	ResultLiveTrading ResultEndpoint = "live-trading"
)

// DataFeedEndpoint selects the market-data feed variant.
type DataFeedEndpoint string

// Data feed endpoint bindings.
const (
	DataFeedBacktesting DataFeedEndpoint = "backtesting"
	DataFeedLiveTrading DataFeedEndpoint = "live-trading"
)

// RealTimeEndpoint selects the real-time event handler variant.
type RealTimeEndpoint string

// Real-time endpoint bindings.
const (
	RealTimeBacktesting RealTimeEndpoint = "backtesting"
	RealTimeLiveTrading RealTimeEndpoint = "live-trading"
)

// SetupEndpoint selects the setup handler variant.
type SetupEndpoint string

// Setup endpoint bindings.
const (
	SetupBacktesting  SetupEndpoint = "backtesting"
	SetupPaperTrading SetupEndpoint = "paper-trading"
)

// Endpoints holds the five endpoint-category bindings of a run. Each binding
// is a category label, not a live connection.
type Endpoints struct {
	Transaction TransactionEndpoint
	Result      ResultEndpoint
	DataFeed    DataFeedEndpoint
	RealTime    RealTimeEndpoint
	Setup       SetupEndpoint
}

// Job is the common surface of all run descriptors.
type Job interface {
	// RunID returns the run's unique identifier.
	RunID() string

	// Mode returns the run mode fixed at construction.
	Mode() Mode
}

// Base carries the fields shared by every run descriptor.
type Base struct {
	ID        string
	UserID    string
	Endpoints Endpoints

	mode Mode
}

// RunID returns the run's unique identifier.
func (b *Base) RunID() string {
	return b.ID
}

// Mode returns the run mode fixed at construction.
func (b *Base) Mode() Mode {
	return b.mode
}

// Compile-time interface checks.
var _ Job = (*BacktestJob)(nil)
var _ Job = (*LiveJob)(nil)

// BacktestJob describes a historical-replay run. PeriodStart and PeriodFinish
// are derived from the algorithm during setup, not supplied by the caller.
type BacktestJob struct {
	Base

	PeriodStart  time.Time
	PeriodFinish time.Time
}

// NewBacktestJob creates a backtest descriptor with its mode tag fixed.
func NewBacktestJob(id, userID string) *BacktestJob {
	return &BacktestJob{
		Base: Base{ID: id, UserID: userID, mode: ModeBacktest},
	}
}

// LiveJob describes a live run. The token fields are synthesized locally by
// the setup layer in this deployment.
type LiveJob struct {
	Base

	IssuedAt     time.Time
	LifeTime     time.Duration
	AccessToken  string
	RefreshToken string
	AccountID    string
}

// NewLiveJob creates a live descriptor with its mode tag fixed.
func NewLiveJob(id, userID string) *LiveJob {
	return &LiveJob{
		Base: Base{ID: id, UserID: userID, mode: ModeLive},
	}
}
