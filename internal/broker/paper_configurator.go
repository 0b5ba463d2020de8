package broker

import (
	"fmt"

	"saturn/internal/job"
	"saturn/pkg/algorithm"
)

// PaperConfigurator performs the brokerage side of live-run setup without a
// venue: it applies run limits, initializes the algorithm, and funds a
// PaperBroker from the algorithm's portfolio cash. It shares the
// Configure-shaped contract with real brokerage configurators so the setup
// layer can delegate to either.
type PaperConfigurator struct {
	limits job.RunLimits
}

// NewPaperConfigurator creates a PaperConfigurator applying the given limits.
func NewPaperConfigurator(limits job.RunLimits) *PaperConfigurator {
	return &PaperConfigurator{limits: limits}
}

// Configure readies the algorithm for a paper-trading run and returns the
// funded paper brokerage.
func (pc *PaperConfigurator) Configure(algo algorithm.Algorithm, _ job.Job) (Broker, error) {
	algo.SetLimits(pc.limits.MaxSecurities, pc.limits.MaxSubscriptions, pc.limits.MaxOrders)

	if err := algo.Initialize(); err != nil {
		return nil, fmt.Errorf("paper brokerage setup: %w", err)
	}

	return NewPaperBroker(algo.Portfolio().Cash()), nil
}
