package job

import "math"

// RunLimits caps what an algorithm may use during a run. The limits are
// applied to the algorithm before its own initialization runs.
type RunLimits struct {
	MaxSecurities    int
	MaxSubscriptions int
	MaxOrders        int
}

// DefaultRunLimits returns the permissive caps used by local deployments,
// where nothing external meters the run.
func DefaultRunLimits() RunLimits {
	return RunLimits{
		MaxSecurities:    10000,
		MaxSubscriptions: 10000,
		MaxOrders:        math.MaxInt32,
	}
}
