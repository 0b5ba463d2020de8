package algorithm

import "sort"

// SubscriptionManager tracks the data-feed subscriptions an algorithm has
// requested. Setup runs on a single goroutine, so no locking is needed here.
type SubscriptionManager struct {
	symbols map[string]bool
}

// NewSubscriptionManager creates an empty SubscriptionManager.
func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		symbols: make(map[string]bool),
	}
}

// Add registers a subscription for the given feed symbol. Adding an existing
// symbol is a no-op.
func (sm *SubscriptionManager) Add(symbol string) {
	sm.symbols[symbol] = true
}

// Has reports whether a subscription exists for the given feed symbol.
func (sm *SubscriptionManager) Has(symbol string) bool {
	return sm.symbols[symbol]
}

// Count returns the number of registered subscriptions.
func (sm *SubscriptionManager) Count() int {
	return len(sm.symbols)
}

// List returns all subscribed feed symbols in sorted order.
func (sm *SubscriptionManager) List() []string {
	out := make([]string, 0, len(sm.symbols))
	for s := range sm.symbols {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
