// Package setup drives the one-time configuration handshake that readies a
// constructed algorithm and its job descriptor for execution, branching on
// the descriptor's run mode.
package setup

import (
	"fmt"
	"log/slog"
	"time"

	"saturn/internal/broker"
	"saturn/internal/job"
	"saturn/pkg/algorithm"
)

// Token window for locally synthesized live credentials: the token is issued
// almost expired, with 60 seconds left, so refresh logic gets exercised.
const (
	tokenLifeTime      = 86399 * time.Second
	tokenRefreshWindow = 60 * time.Second
)

// Local placeholder identity values for the non-production variant.
const (
	localUserID       = "local"
	paperAccessToken  = "paper-access-token"
	paperRefreshToken = "paper-refresh-token"
	paperAccountID    = "paper-account"
)

// initializeErrorPrefix prefixes every accumulated setup failure.
const initializeErrorPrefix = "Failed to initialize algorithm: "

// BrokerageConfigurator is the Configure-shaped collaborator that live-mode
// setup delegates brokerage construction to.
type BrokerageConfigurator interface {
	Configure(algo algorithm.Algorithm, j job.Job) (broker.Broker, error)
}

// Configurator performs mode-specific run setup: it initializes the
// algorithm, mutates the job descriptor in place with resolved endpoint,
// identity, and timing fields, and reports aggregate success or failure.
type Configurator struct {
	limits    job.RunLimits
	currency  CurrencyFeedEnsurer
	brokerage BrokerageConfigurator
	logger    *slog.Logger

	// Resolved once per Configure call, read by the caller afterwards.
	StartingCapital float64
	StartingDate    time.Time
	MaxOrders       int
}

// NewConfigurator creates a Configurator. limits are applied to the algorithm
// before its own initialization; brokerage handles live-mode venue wiring.
func NewConfigurator(limits job.RunLimits, currency CurrencyFeedEnsurer, brokerage BrokerageConfigurator, logger *slog.Logger) *Configurator {
	return &Configurator{
		limits:    limits,
		currency:  currency,
		brokerage: brokerage,
		logger:    logger,
	}
}

// Configure runs the setup branch matching the descriptor's mode. It returns
// whether setup succeeded (the error list is empty), every accumulated error,
// and the brokerage readied for the run.
//
// Descriptor mutations are applied in place and are not rolled back when a
// later step fails: a failing branch returns whatever mutations already
// occurred. Any error or panic from the algorithm's initialization, the
// currency-feed step, or the delegated brokerage setup stops the branch and
// is recorded with the "Failed to initialize algorithm: " prefix.
func (c *Configurator) Configure(algo algorithm.Algorithm, j job.Job) (bool, *ErrorList, broker.Broker) {
	errs := &ErrorList{}
	var brokerage broker.Broker

	switch descriptor := j.(type) {
	case *job.BacktestJob:
		brokerage = c.configureBacktest(algo, descriptor, errs)
	case *job.LiveJob:
		brokerage = c.configureLive(algo, descriptor, errs)
	default:
		errs.Add(fmt.Sprintf("unsupported job descriptor type %T", j))
	}

	ok := errs.Empty()
	if ok {
		c.logger.Info("run setup complete",
			"run", j.RunID(),
			"mode", string(j.Mode()),
			"starting_capital", c.StartingCapital,
			"starting_date", c.StartingDate)
	}
	return ok, errs, brokerage
}

// configureBacktest prepares a historical-replay run. The descriptor is only
// mutated after the algorithm initializes successfully.
func (c *Configurator) configureBacktest(algo algorithm.Algorithm, descriptor *job.BacktestJob, errs *ErrorList) broker.Broker {
	var brokerage broker.Broker

	err := capture(func() error {
		algo.SetLimits(c.limits.MaxSecurities, c.limits.MaxSubscriptions, c.limits.MaxOrders)

		if err := algo.Initialize(); err != nil {
			return err
		}
		if err := c.currency.EnsureCurrencyDataFeeds(algo.Subscriptions(), algo.Portfolio()); err != nil {
			return err
		}

		descriptor.PeriodStart = algo.StartDate()
		descriptor.PeriodFinish = algo.EndDate()
		descriptor.UserID = localUserID
		descriptor.Endpoints = job.Endpoints{
			Transaction: job.TransactionBacktesting,
			Result:      job.ResultBacktesting,
			DataFeed:    job.DataFeedBacktesting,
			RealTime:    job.RealTimeBacktesting,
			Setup:       job.SetupBacktesting,
		}

		c.StartingCapital = algo.Portfolio().Cash()
		c.StartingDate = descriptor.PeriodStart
		c.MaxOrders = c.limits.MaxOrders

		brokerage = broker.NewPaperBroker(c.StartingCapital)
		return nil
	})
	if err != nil {
		c.fail(errs, descriptor.RunID(), err)
	}
	return brokerage
}

// configureLive prepares a live run with locally synthesized credentials and
// a paper brokerage built by the delegated configurator.
func (c *Configurator) configureLive(algo algorithm.Algorithm, descriptor *job.LiveJob, errs *ErrorList) broker.Broker {
	var brokerage broker.Broker

	err := capture(func() error {
		descriptor.IssuedAt = time.Now().Add(-(tokenLifeTime - tokenRefreshWindow))
		descriptor.LifeTime = tokenLifeTime
		descriptor.AccessToken = paperAccessToken
		descriptor.RefreshToken = paperRefreshToken
		descriptor.AccountID = paperAccountID
		descriptor.UserID = localUserID
		descriptor.Endpoints = job.Endpoints{
			Transaction: job.TransactionBrokerage,
			Result:      job.ResultLiveTrading,
			DataFeed:    job.DataFeedLiveTrading,
			RealTime:    job.RealTimeLiveTrading,
			Setup:       job.SetupPaperTrading,
		}

		b, err := c.brokerage.Configure(algo, descriptor)
		if err != nil {
			return err
		}
		brokerage = b

		c.StartingDate = time.Now()
		c.StartingCapital = algo.Portfolio().Cash()
		c.MaxOrders = c.limits.MaxOrders
		return nil
	})
	if err != nil {
		c.fail(errs, descriptor.RunID(), err)
	}
	return brokerage
}

// fail logs a branch failure and records it on the error list.
func (c *Configurator) fail(errs *ErrorList, runID string, err error) {
	c.logger.Error("run setup failed", "run", runID, "error", err)
	errs.Add(initializeErrorPrefix + err.Error())
}

// capture invokes fn, converting a panic into an error so a faulting
// collaborator cannot unwind past the setup branch.
func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
