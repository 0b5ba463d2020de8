package setup

import (
	"saturn/internal/broker"
	"saturn/internal/results"
)

// OnBrokerageError is the brokerage fault extension point. The local variant
// has nothing to intercept and always reports success; networked
// configurators override this path to push brokerage faults through the
// result sink instead of silently continuing.
func (c *Configurator) OnBrokerageError(_ results.Sink, _ broker.Broker) bool {
	return true
}
