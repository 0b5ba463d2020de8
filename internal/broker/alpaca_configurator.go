package broker

import (
	"context"
	"fmt"
	"time"

	"saturn/internal/job"
	"saturn/pkg/algorithm"
)

// accountProbeTimeout bounds the connectivity check against the venue during
// setup.
const accountProbeTimeout = 10 * time.Second

// AlpacaConfigurator performs the brokerage side of live-run setup against
// Alpaca: it applies run limits, initializes the algorithm, and verifies the
// account credentials before handing the brokerage over.
type AlpacaConfigurator struct {
	limits    job.RunLimits
	apiKey    string
	apiSecret string
	baseURL   string
}

// NewAlpacaConfigurator creates an AlpacaConfigurator applying the given
// limits and connecting with the given credentials.
func NewAlpacaConfigurator(limits job.RunLimits, apiKey, apiSecret, baseURL string) *AlpacaConfigurator {
	return &AlpacaConfigurator{
		limits:    limits,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
	}
}

// Configure readies the algorithm for a live run and returns the verified
// Alpaca brokerage. A credentials or connectivity failure is reported before
// any order could be placed.
func (ac *AlpacaConfigurator) Configure(algo algorithm.Algorithm, _ job.Job) (Broker, error) {
	algo.SetLimits(ac.limits.MaxSecurities, ac.limits.MaxSubscriptions, ac.limits.MaxOrders)

	if err := algo.Initialize(); err != nil {
		return nil, fmt.Errorf("live brokerage setup: %w", err)
	}

	brokerage := NewAlpacaBroker(ac.apiKey, ac.apiSecret, ac.baseURL)

	ctx, cancel := context.WithTimeout(context.Background(), accountProbeTimeout)
	defer cancel()
	if _, err := brokerage.GetAccount(ctx); err != nil {
		return nil, fmt.Errorf("verifying brokerage account: %w", err)
	}

	return brokerage, nil
}
